package mockdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightdesk/flightdesk/airports"
	"github.com/flightdesk/flightdesk/flight"
)

func testParams(origin, destination string) flight.SearchParams {
	return flight.SearchParams{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: "2024-12-15",
		Passengers:    1,
	}
}

func TestClassify(t *testing.T) {
	g := New(airports.NewDirectory())

	cases := []struct {
		origin, destination string
		want                flight.RouteType
	}{
		{"LAX", "JFK", flight.RouteDomestic},
		{"IND", "ATL", flight.RouteDomestic},
		{"IND", "LOS", flight.RouteLongHaul},
		{"JFK", "NRT", flight.RouteLongHaul},
		{"LHR", "CDG", flight.RouteInternational},
		{"JFK", "LHR", flight.RouteLongHaul},
	}
	for _, tc := range cases {
		got := g.Classify(tc.origin, tc.destination)
		assert.Equal(t, tc.want, got, "%s-%s", tc.origin, tc.destination)
	}
}

func TestClassifyUnknownAirportsAreDomestic(t *testing.T) {
	g := New(airports.NewDirectory())

	// Two unknown codes resolve to zero records with equal (empty)
	// countries, so the route degrades to domestic.
	assert.Equal(t, flight.RouteDomestic, g.Classify("AAA", "BBB"))
}

func TestFlightsDomestic(t *testing.T) {
	g := New(airports.NewDirectory())

	records, routeType := g.Flights(testParams("LAX", "JFK"))
	assert.Equal(t, flight.RouteDomestic, routeType)
	require.Len(t, records, 2)

	assert.Equal(t, "MOCK_001", records[0].ID)
	assert.Equal(t, "DL1234", records[0].FlightNumber)
	assert.Equal(t, 1, records[0].Stops)
	assert.Equal(t, []string{"ATL"}, records[0].StopAirports)
	assert.Equal(t, 485.00, records[0].Price.Total)

	assert.Equal(t, "MOCK_002", records[1].ID)
	assert.Equal(t, 0, records[1].Stops)

	for _, r := range records {
		assert.Less(t, r.Price.Total, 850.00, "domestic fares stay below the international band")
	}
}

func TestFlightsInternational(t *testing.T) {
	g := New(airports.NewDirectory())

	records, routeType := g.Flights(testParams("LHR", "CDG"))
	assert.Equal(t, flight.RouteInternational, routeType)
	require.Len(t, records, 1)

	assert.Equal(t, "BA178", records[0].FlightNumber)
	assert.Equal(t, 0, records[0].Stops)
	assert.Equal(t, 850.00, records[0].Price.Total)
}

func TestFlightsLongHaul(t *testing.T) {
	g := New(airports.NewDirectory())

	records, routeType := g.Flights(testParams("IND", "LOS"))
	assert.Equal(t, flight.RouteLongHaul, routeType)
	require.Len(t, records, 3)

	for _, r := range records {
		assert.GreaterOrEqual(t, r.Stops, 1, "long-haul itineraries are multi-stop")
		assert.GreaterOrEqual(t, r.Price.Total, 1000.00)
		assert.Len(t, r.StopAirports, r.Stops)
	}
	assert.Equal(t, []string{"ATL", "CDG"}, records[0].StopAirports)
	assert.Equal(t, "TK1970/TK625", records[2].FlightNumber)
}

func TestFlightsEchoParams(t *testing.T) {
	g := New(airports.NewDirectory())
	params := testParams("SFO", "NRT")

	records, _ := g.Flights(params)
	for _, r := range records {
		assert.Equal(t, "SFO", r.Departure.Airport)
		assert.Equal(t, "NRT", r.Arrival.Airport)
		assert.Equal(t, params.DepartureDate, r.Departure.Date)
		assert.Equal(t, params.DepartureDate, r.Arrival.Date)
	}
}

func TestFlightsPriceBreakdown(t *testing.T) {
	g := New(airports.NewDirectory())

	records, _ := g.Flights(testParams("IND", "LOS"))
	for _, r := range records {
		assert.InDelta(t, r.Price.Total, r.Price.BaseFare+r.Price.Taxes, 0.001, r.ID)
		assert.Equal(t, "USD", r.Price.Currency)
	}
}
