// Package mockdata produces deterministic synthetic flight records
// keyed by route characteristics. It is the fallback when live lookup
// is disabled, unavailable or empty; its output is illustrative
// stand-in data and is always tagged as such by the orchestrator.
package mockdata

import (
	"github.com/flightdesk/flightdesk/airports"
	"github.com/flightdesk/flightdesk/flight"
)

// Generator builds synthetic flights for a route. It never fails.
type Generator struct {
	directory *airports.Directory
}

// New creates a generator backed by the given airport directory.
func New(directory *airports.Directory) *Generator {
	return &Generator{directory: directory}
}

// Classify determines the route type from the endpoints' countries.
// A route is international when the countries differ, and long-haul
// when both countries map to known, different continents.
func (g *Generator) Classify(origin, destination string) flight.RouteType {
	o, _ := g.directory.Lookup(origin)
	d, _ := g.directory.Lookup(destination)

	if o.Country == d.Country {
		return flight.RouteDomestic
	}

	oc, okO := airports.Continent(o.Country)
	dc, okD := airports.Continent(d.Country)
	if okO && okD && oc != dc {
		return flight.RouteLongHaul
	}
	return flight.RouteInternational
}

// Flights returns 1-3 synthetic records for the route, shaped by its
// classification: long-haul routes get multi-stop wide-body
// itineraries in the highest price band, short international routes a
// single nonstop premium itinerary, domestic routes a small price
// band with 0-1 stops.
func (g *Generator) Flights(params flight.SearchParams) ([]flight.Record, flight.RouteType) {
	routeType := g.Classify(params.Origin, params.Destination)

	var templates []template
	switch routeType {
	case flight.RouteLongHaul:
		templates = longHaulTemplates
	case flight.RouteInternational:
		templates = internationalTemplates
	default:
		templates = domesticTemplates
	}

	records := make([]flight.Record, 0, len(templates))
	for i, t := range templates {
		records = append(records, t.record(i+1, params))
	}
	return records, routeType
}

type template struct {
	airline      flight.Airline
	flightNumber string
	aircraft     string
	depTime      string
	depTerminal  string
	arrTime      string
	arrTerminal  string
	duration     string
	stopAirports []string
	total        float64
	baseFare     float64
	bookingClass string
	seats        int
}

func (t template) record(n int, params flight.SearchParams) flight.Record {
	stops := make([]string, len(t.stopAirports))
	copy(stops, t.stopAirports)

	return flight.Record{
		ID:           mockID(n),
		Airline:      t.airline,
		FlightNumber: t.flightNumber,
		Aircraft:     t.aircraft,
		Departure: flight.Endpoint{
			Airport:  params.Origin,
			Time:     t.depTime,
			Date:     params.DepartureDate,
			Terminal: t.depTerminal,
		},
		Arrival: flight.Endpoint{
			Airport:  params.Destination,
			Time:     t.arrTime,
			Date:     params.DepartureDate,
			Terminal: t.arrTerminal,
		},
		Duration:     t.duration,
		Stops:        len(stops),
		StopAirports: stops,
		Price: flight.Price{
			Total:    t.total,
			Currency: "USD",
			BaseFare: t.baseFare,
			Taxes:    t.total - t.baseFare,
		},
		CabinClass:     "Economy",
		BookingClass:   t.bookingClass,
		SeatsAvailable: t.seats,
	}
}

func mockID(n int) string {
	return []string{"MOCK_001", "MOCK_002", "MOCK_003"}[n-1]
}

var longHaulTemplates = []template{
	{
		airline:      flight.Airline{Code: "DL", Name: "Delta Air Lines"},
		flightNumber: "DL156/AF578",
		aircraft:     "Boeing 767-300",
		depTime:      "17:30", depTerminal: "A",
		arrTime: "19:45+1", arrTerminal: "MM2",
		duration:     "18h 15m",
		stopAirports: []string{"ATL", "CDG"},
		total:        1450.00, baseFare: 1200.00,
		bookingClass: "L", seats: 5,
	},
	{
		airline:      flight.Airline{Code: "UA", Name: "United Airlines"},
		flightNumber: "UA82/LH568",
		aircraft:     "Boeing 777-200",
		depTime:      "20:15", depTerminal: "B",
		arrTime: "21:30+1", arrTerminal: "MM2",
		duration:     "17h 15m",
		stopAirports: []string{"ORD", "FRA"},
		total:        1620.00, baseFare: 1350.00,
		bookingClass: "Q", seats: 8,
	},
	{
		airline:      flight.Airline{Code: "TK", Name: "Turkish Airlines"},
		flightNumber: "TK1970/TK625",
		aircraft:     "Airbus A330-300",
		depTime:      "14:40", depTerminal: "A",
		arrTime: "18:15+1", arrTerminal: "MM2",
		duration:     "19h 35m",
		stopAirports: []string{"IST"},
		total:        1285.00, baseFare: 1050.00,
		bookingClass: "V", seats: 12,
	},
}

var internationalTemplates = []template{
	{
		airline:      flight.Airline{Code: "BA", Name: "British Airways"},
		flightNumber: "BA178",
		aircraft:     "Boeing 777-300",
		depTime:      "21:30", depTerminal: "5",
		arrTime: "13:45+1", arrTerminal: "1",
		duration:     "11h 15m",
		stopAirports: nil,
		total:        850.00, baseFare: 720.00,
		bookingClass: "M", seats: 9,
	},
}

var domesticTemplates = []template{
	{
		airline:      flight.Airline{Code: "DL", Name: "Delta Air Lines"},
		flightNumber: "DL1234",
		aircraft:     "Boeing 737-800",
		depTime:      "08:30", depTerminal: "2",
		arrTime: "17:45", arrTerminal: "4",
		duration:     "9h 15m",
		stopAirports: []string{"ATL"},
		total:        485.00, baseFare: 420.00,
		bookingClass: "V", seats: 7,
	},
	{
		airline:      flight.Airline{Code: "UA", Name: "United Airlines"},
		flightNumber: "UA5678",
		aircraft:     "Airbus A320",
		depTime:      "14:20", depTerminal: "1",
		arrTime: "23:10", arrTerminal: "4",
		duration:     "8h 50m",
		stopAirports: nil,
		total:        520.00, baseFare: 455.00,
		bookingClass: "Q", seats: 12,
	},
}
