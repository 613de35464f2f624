package amadeus

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flightdesk/flightdesk/flight"
)

const (
	// DefaultBaseFareRatio estimates the base fare as a fraction of
	// the total when the upstream omits the base field. It is a
	// heuristic, not a ground-truth tax figure.
	DefaultBaseFareRatio = 0.85

	// Defaults substituted for fields the upstream may omit.
	DefaultCabinClass   = "ECONOMY"
	DefaultBookingClass = "Y"
	DefaultSeatCount    = 9
	defaultTerminal     = "TBD"
	defaultAircraft     = "Unknown"
)

var airlineNames = map[string]string{
	"AA": "American Airlines",
	"DL": "Delta Air Lines",
	"UA": "United Airlines",
	"BA": "British Airways",
	"LH": "Lufthansa",
	"AF": "Air France",
	"KL": "KLM",
	"TK": "Turkish Airlines",
	"EK": "Emirates",
	"QR": "Qatar Airways",
}

// AirlineName resolves an IATA carrier code to a display name.
// Unknown codes render as "Airline <code>".
func AirlineName(code string) string {
	if name, ok := airlineNames[code]; ok {
		return name
	}
	return "Airline " + code
}

// FormatDuration converts an ISO-8601-like duration token (PT18H15M)
// into "18h 15m". Tokens that do not parse pass through unchanged.
func FormatDuration(iso string) string {
	rest, ok := strings.CutPrefix(iso, "PT")
	if !ok {
		return iso
	}

	hours, minutes := 0, 0
	if i := strings.Index(rest, "H"); i >= 0 {
		h, err := strconv.Atoi(rest[:i])
		if err != nil {
			return iso
		}
		hours = h
		rest = rest[i+1:]
	}
	if i := strings.Index(rest, "M"); i >= 0 {
		m, err := strconv.Atoi(rest[:i])
		if err != nil {
			return iso
		}
		minutes = m
	} else if rest != "" {
		return iso
	}

	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// clockTime extracts HH:MM from an upstream timestamp like
// "2024-12-15T17:30:00".
func clockTime(at string) string {
	if len(at) >= 16 {
		return at[11:16]
	}
	return at
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// normalizeOffer converts one raw upstream offer into the internal
// record shape. Only the first itinerary is considered.
func (c *Client) normalizeOffer(offer Offer, index int, departureDate string) (flight.Record, error) {
	if len(offer.Itineraries) == 0 {
		return flight.Record{}, fmt.Errorf("offer %s has no itineraries", offer.ID)
	}
	itinerary := offer.Itineraries[0]
	if len(itinerary.Segments) == 0 {
		return flight.Record{}, fmt.Errorf("offer %s has no segments", offer.ID)
	}

	first := itinerary.Segments[0]
	last := itinerary.Segments[len(itinerary.Segments)-1]

	stops := len(itinerary.Segments) - 1
	stopAirports := make([]string, 0, stops)
	for _, seg := range itinerary.Segments[:len(itinerary.Segments)-1] {
		stopAirports = append(stopAirports, seg.Arrival.IataCode)
	}

	total, err := strconv.ParseFloat(offer.Price.Total, 64)
	if err != nil {
		return flight.Record{}, fmt.Errorf("offer %s has unparseable total %q", offer.ID, offer.Price.Total)
	}
	base := total * c.baseFareRatio
	if offer.Price.Base != "" {
		if parsed, err := strconv.ParseFloat(offer.Price.Base, 64); err == nil {
			base = parsed
		}
	}

	cabin, booking := DefaultCabinClass, DefaultBookingClass
	if len(offer.TravelerPricings) > 0 && len(offer.TravelerPricings[0].FareDetailsBySegment) > 0 {
		fare := offer.TravelerPricings[0].FareDetailsBySegment[0]
		cabin = orDefault(fare.Cabin, DefaultCabinClass)
		booking = orDefault(fare.Class, DefaultBookingClass)
	}

	seats := offer.NumberOfBookableSeats
	if seats <= 0 {
		seats = DefaultSeatCount
	}

	return flight.Record{
		ID:           fmt.Sprintf("AMADEUS_%d", index+1),
		Airline:      flight.Airline{Code: first.CarrierCode, Name: AirlineName(first.CarrierCode)},
		FlightNumber: first.CarrierCode + first.Number,
		Aircraft:     orDefault(first.Aircraft.Code, defaultAircraft),
		Departure: flight.Endpoint{
			Airport:  first.Departure.IataCode,
			Time:     clockTime(first.Departure.At),
			Date:     departureDate,
			Terminal: orDefault(first.Departure.Terminal, defaultTerminal),
		},
		Arrival: flight.Endpoint{
			Airport:  last.Arrival.IataCode,
			Time:     clockTime(last.Arrival.At),
			Date:     departureDate,
			Terminal: orDefault(last.Arrival.Terminal, defaultTerminal),
		},
		Duration:     FormatDuration(itinerary.Duration),
		Stops:        stops,
		StopAirports: stopAirports,
		Price: flight.Price{
			Total:    total,
			Currency: offer.Price.Currency,
			BaseFare: base,
			Taxes:    total - base,
		},
		CabinClass:     cabin,
		BookingClass:   booking,
		SeatsAvailable: seats,
	}, nil
}
