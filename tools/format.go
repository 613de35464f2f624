package tools

import (
	"fmt"
	"strings"
	"time"

	"github.com/flightdesk/flightdesk/flight"
)

// trendLimit is how many per-date quotes the trend section shows
// before collapsing the remainder into a count.
const trendLimit = 5

func provenanceNote(p flight.Provenance) string {
	switch p {
	case flight.ProvenanceLive:
		return "Prices are from the live flight API."
	case flight.ProvenanceMock:
		return "Using demo data - live API unavailable or disabled."
	default:
		return "No flight data available."
	}
}

// FormatSearchResult renders one search result as text.
func FormatSearchResult(result *flight.SearchResult) string {
	var b strings.Builder

	if result.Provenance == flight.ProvenanceNone || len(result.Flights) == 0 {
		fmt.Fprintf(&b, "No flights found for %s -> %s on %s.\n",
			result.Params.Origin, result.Params.Destination, result.Params.DepartureDate)
		if result.Err != "" {
			fmt.Fprintf(&b, "Reason: %s\n", result.Err)
		}
		return b.String()
	}

	fmt.Fprintf(&b, "Flight Search Results (%s)\n", result.Provenance)
	fmt.Fprintf(&b, "Route: %s -> %s\n", result.Params.Origin, result.Params.Destination)
	fmt.Fprintf(&b, "Date: %s\n", result.Params.DepartureDate)
	fmt.Fprintf(&b, "Passengers: %d\n\n", result.Params.Passengers)

	for i, f := range result.Flights {
		fmt.Fprintf(&b, "Option %d: %s %s\n", i+1, f.Airline.Name, f.FlightNumber)
		fmt.Fprintf(&b, "  Aircraft: %s\n", f.Aircraft)
		fmt.Fprintf(&b, "  Departure: %s from %s Terminal %s\n", f.Departure.Time, f.Departure.Airport, f.Departure.Terminal)
		fmt.Fprintf(&b, "  Arrival: %s at %s Terminal %s\n", f.Arrival.Time, f.Arrival.Airport, f.Arrival.Terminal)
		fmt.Fprintf(&b, "  Duration: %s\n", f.Duration)
		if f.Stops == 0 {
			b.WriteString("  Direct flight\n")
		} else {
			fmt.Fprintf(&b, "  %d stop(s): %s\n", f.Stops, strings.Join(f.StopAirports, ", "))
		}
		fmt.Fprintf(&b, "  Price: $%.2f %s\n", f.Price.Total, f.Price.Currency)
		fmt.Fprintf(&b, "  Seats available: %d\n", f.SeatsAvailable)
		fmt.Fprintf(&b, "  Class: %s (%s)\n\n", f.CabinClass, f.BookingClass)
	}

	fmt.Fprintf(&b, "Search completed at: %s\n", result.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&b, "Total results: %d\n", result.TotalResults)
	b.WriteString(provenanceNote(result.Provenance))

	return b.String()
}

// FormatBestPrice renders a best-price scan: the global cheapest
// option plus a short price trend.
func FormatBestPrice(scan *flight.BestPriceScan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Best Price Found: %s -> %s\n", scan.Origin, scan.Destination)
	fmt.Fprintf(&b, "Date Range: %s to %s\n", scan.StartDate, scan.EndDate)
	fmt.Fprintf(&b, "Passengers: %d\n\n", scan.Passengers)

	best := scan.Best
	b.WriteString("CHEAPEST OPTION:\n")
	fmt.Fprintf(&b, "Date: %s\n", best.Date)
	fmt.Fprintf(&b, "Flight: %s %s\n", best.Flight.Airline.Name, best.Flight.FlightNumber)
	fmt.Fprintf(&b, "Departure: %s from %s\n", best.Flight.Departure.Time, best.Flight.Departure.Airport)
	fmt.Fprintf(&b, "Arrival: %s at %s\n", best.Flight.Arrival.Time, best.Flight.Arrival.Airport)
	fmt.Fprintf(&b, "Duration: %s\n", best.Flight.Duration)
	if best.Flight.Stops == 0 {
		b.WriteString("Direct flight\n")
	} else {
		fmt.Fprintf(&b, "%d stop(s): %s\n", best.Flight.Stops, strings.Join(best.Flight.StopAirports, ", "))
	}
	fmt.Fprintf(&b, "Price: $%.2f %s\n", best.Flight.Price.Total, best.Flight.Price.Currency)
	fmt.Fprintf(&b, "Seats available: %d\n\n", best.Flight.SeatsAvailable)

	b.WriteString("PRICE TRENDS:\n")
	writeTrend(&b, scan)
	b.WriteString("\n")
	b.WriteString(provenanceNote(best.Provenance))

	return b.String()
}

// FormatPriceComparison renders the full per-date price list.
func FormatPriceComparison(scan *flight.BestPriceScan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Price Comparison: %s -> %s\n", scan.Origin, scan.Destination)
	fmt.Fprintf(&b, "Starting from: %s\n\n", scan.StartDate)

	for _, q := range scan.Quotes {
		marker := "  "
		if q.Date == scan.Best.Date {
			marker = "* "
		}
		fmt.Fprintf(&b, "%s%s (%s): $%.0f\n", marker, q.Date, weekday(q.Date), q.Price)
	}

	fmt.Fprintf(&b, "\nCheapest flight: $%.0f on %s\n", scan.Best.Price, scan.Best.Date)
	b.WriteString(provenanceNote(scan.Best.Provenance))

	return b.String()
}

func writeTrend(b *strings.Builder, scan *flight.BestPriceScan) {
	for i, q := range scan.Quotes {
		if i == trendLimit {
			break
		}
		if q.Date == scan.Best.Date {
			fmt.Fprintf(b, "* %s (%s): $%.0f <- BEST PRICE\n", q.Date, weekday(q.Date), q.Price)
		} else {
			fmt.Fprintf(b, "  %s (%s): $%.0f\n", q.Date, weekday(q.Date), q.Price)
		}
	}
	if len(scan.Quotes) > trendLimit {
		fmt.Fprintf(b, "  ... and %d more dates\n", len(scan.Quotes)-trendLimit)
	}
}

func weekday(date string) string {
	d, err := time.Parse(flight.DateLayout, date)
	if err != nil {
		return "?"
	}
	return d.Format("Mon")
}
