package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/flightdesk/flightdesk/airports"
)

// AirportInfoTool returns metadata for a single airport code.
type AirportInfoTool struct {
	Directory *airports.Directory
}

func (t *AirportInfoTool) Name() string { return "get_airport_info" }

func (t *AirportInfoTool) Description() string {
	return "Get detailed information about an airport. Arguments: airport_code (3-letter IATA code, e.g. LAX)."
}

func (t *AirportInfoTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	code, err := stringArg(args, "airport_code", true)
	if err != nil {
		return "", err
	}

	airport, ok := t.Directory.Lookup(code)
	if !ok {
		return fmt.Sprintf("Airport %q not found. Available airports: %s",
			code, strings.Join(t.Directory.Codes(), ", ")), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Airport Information: %s\n\n", code)
	fmt.Fprintf(&b, "Name: %s\n", airport.Name)
	fmt.Fprintf(&b, "City: %s\n", airport.City)
	if airport.State != "" {
		fmt.Fprintf(&b, "State: %s\n", airport.State)
	}
	fmt.Fprintf(&b, "Country: %s\n", airport.Country)
	fmt.Fprintf(&b, "Timezone: %s\n", airport.Timezone)
	fmt.Fprintf(&b, "IATA Code: %s\n", airport.Code)
	fmt.Fprintf(&b, "ICAO Code: %s\n", airport.ICAO)

	return b.String(), nil
}
