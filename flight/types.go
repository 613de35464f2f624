// Package flight defines the shared data model for the flight search
// service: airport records, search parameters, normalized flight
// records and the result types returned by the orchestrator.
package flight

import "time"

// DateLayout is the calendar date format used across all tool inputs.
const DateLayout = "2006-01-02"

// AirportRecord describes a single airport in the static directory.
type AirportRecord struct {
	Code     string `json:"iata"`
	Name     string `json:"name"`
	City     string `json:"city"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country"`
	Timezone string `json:"timezone"`
	ICAO     string `json:"icao"`
}

// Airline is a carrier code plus its display name.
type Airline struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Endpoint is one end of a flight: where and when it touches the ground.
type Endpoint struct {
	Airport  string `json:"airport"`
	Time     string `json:"time"`
	Date     string `json:"date"`
	Terminal string `json:"terminal"`
}

// Price breaks a fare down into its components.
// Invariant: BaseFare + Taxes == Total within rounding.
type Price struct {
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
	BaseFare float64 `json:"base_fare"`
	Taxes    float64 `json:"taxes"`
}

// Record is a single flight option in the internal shape, regardless
// of whether it came from the live upstream or the mock generator.
type Record struct {
	ID             string   `json:"id"`
	Airline        Airline  `json:"airline"`
	FlightNumber   string   `json:"flight_number"`
	Aircraft       string   `json:"aircraft"`
	Departure      Endpoint `json:"departure"`
	Arrival        Endpoint `json:"arrival"`
	Duration       string   `json:"duration"`
	Stops          int      `json:"stops"`
	StopAirports   []string `json:"stop_airports"`
	Price          Price    `json:"price"`
	CabinClass     string   `json:"cabin_class"`
	BookingClass   string   `json:"booking_class"`
	SeatsAvailable int      `json:"seats_available"`
}

// SearchParams are the validated inputs for a single search.
type SearchParams struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date,omitempty"`
	Passengers    int    `json:"passengers"`
}

// Provenance marks where the records in a SearchResult came from.
type Provenance string

const (
	ProvenanceLive Provenance = "live"
	ProvenanceMock Provenance = "mock"
	ProvenanceNone Provenance = "none"
)

// RouteType classifies a route by its endpoints' countries and continents.
type RouteType string

const (
	RouteDomestic      RouteType = "domestic"
	RouteInternational RouteType = "international"
	RouteLongHaul      RouteType = "long_haul"
)

// SearchResult is the outcome of one search. Flights keep generation
// order; they are not price-sorted.
type SearchResult struct {
	Params       SearchParams `json:"search_params"`
	Flights      []Record     `json:"flights"`
	Timestamp    time.Time    `json:"search_timestamp"`
	TotalResults int          `json:"total_results"`
	Provenance   Provenance   `json:"data_source"`
	RouteType    RouteType    `json:"route_type,omitempty"`
	Err          string       `json:"error,omitempty"`
}

// DateQuote is the cheapest option found for a single date.
type DateQuote struct {
	Date       string     `json:"date"`
	Price      float64    `json:"price"`
	Flight     Record     `json:"flight"`
	Provenance Provenance `json:"data_source"`
}

// BestPriceScan is the result of scanning an inclusive date range.
// Quotes holds one entry per date that produced any flights, in
// calendar order; Best is the global minimum with ties broken by the
// earliest date.
type BestPriceScan struct {
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	StartDate   string      `json:"start_date"`
	EndDate     string      `json:"end_date"`
	Passengers  int         `json:"passengers"`
	Best        DateQuote   `json:"best"`
	Quotes      []DateQuote `json:"quotes"`
}
