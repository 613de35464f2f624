package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flightdesk/flightdesk/flight"
	"github.com/flightdesk/flightdesk/log"
	"github.com/flightdesk/flightdesk/search"
)

// SearchFlightsTool searches flights between two airports on a date.
type SearchFlightsTool struct {
	Service *search.Service
}

func (t *SearchFlightsTool) Name() string { return "search_flights" }

func (t *SearchFlightsTool) Description() string {
	return "Search for flights between airports. Arguments: origin (3-letter IATA code), destination (3-letter IATA code), departure_date (YYYY-MM-DD), return_date (optional, YYYY-MM-DD), passengers (1-9, default 1)."
}

func (t *SearchFlightsTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	origin, err := stringArg(args, "origin", true)
	if err != nil {
		return "", err
	}
	destination, err := stringArg(args, "destination", true)
	if err != nil {
		return "", err
	}
	departureDate, err := stringArg(args, "departure_date", false)
	if err != nil {
		return "", err
	}

	params := flight.SearchParams{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: departureDate,
		ReturnDate:    optionalStringArg(args, "return_date"),
		Passengers:    intArg(args, "passengers", 1),
	}

	log.Infof(ctx, "Tool search_flights: %s->%s on %s", origin, destination, departureDate)

	result, err := t.Service.Search(ctx, params)
	if err != nil {
		return "", err
	}
	return FormatSearchResult(result), nil
}

// BestPriceTool finds the cheapest flight within a date range.
type BestPriceTool struct {
	Service *search.Service
}

func (t *BestPriceTool) Name() string { return "find_best_price" }

func (t *BestPriceTool) Description() string {
	return "Find the cheapest flight within a date range. Arguments: origin, destination, start_date (YYYY-MM-DD), end_date (YYYY-MM-DD), passengers (1-9, default 1)."
}

func (t *BestPriceTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	origin, err := stringArg(args, "origin", true)
	if err != nil {
		return "", err
	}
	destination, err := stringArg(args, "destination", true)
	if err != nil {
		return "", err
	}
	startDate, err := stringArg(args, "start_date", false)
	if err != nil {
		return "", err
	}
	endDate, err := stringArg(args, "end_date", false)
	if err != nil {
		return "", err
	}
	passengers := intArg(args, "passengers", 1)

	log.Infof(ctx, "Tool find_best_price: %s->%s %s..%s", origin, destination, startDate, endDate)

	scan, err := t.Service.FindBestPrice(ctx, origin, destination, startDate, endDate, passengers)
	if err != nil {
		var nf *flight.NotFoundError
		if errors.As(err, &nf) {
			return "No flights found in the specified date range.", nil
		}
		return "", err
	}
	return FormatBestPrice(scan), nil
}

// ComparePricesTool compares prices across consecutive dates starting
// from a given date.
type ComparePricesTool struct {
	Service *search.Service
}

func (t *ComparePricesTool) Name() string { return "compare_flight_prices" }

func (t *ComparePricesTool) Description() string {
	return "Compare flight prices across multiple dates. Arguments: origin, destination, start_date (YYYY-MM-DD), days_range (1-30, default 7)."
}

func (t *ComparePricesTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	origin, err := stringArg(args, "origin", true)
	if err != nil {
		return "", err
	}
	destination, err := stringArg(args, "destination", true)
	if err != nil {
		return "", err
	}
	startDate, err := stringArg(args, "start_date", false)
	if err != nil {
		return "", err
	}
	daysRange := intArg(args, "days_range", 7)
	if daysRange < 1 || daysRange > 30 {
		return "", &flight.ValidationError{Reason: fmt.Sprintf("days_range %d out of range 1..30", daysRange)}
	}

	start, err := time.Parse(flight.DateLayout, startDate)
	if err != nil {
		return "", &flight.ValidationError{Reason: fmt.Sprintf("invalid start date %q, expected YYYY-MM-DD", startDate)}
	}
	endDate := start.AddDate(0, 0, daysRange-1).Format(flight.DateLayout)

	log.Infof(ctx, "Tool compare_flight_prices: %s->%s from %s over %d days", origin, destination, startDate, daysRange)

	scan, err := t.Service.FindBestPrice(ctx, origin, destination, startDate, endDate, 1)
	if err != nil {
		var nf *flight.NotFoundError
		if errors.As(err, &nf) {
			return "No flights found in the specified date range.", nil
		}
		return "", err
	}
	return FormatPriceComparison(scan), nil
}
