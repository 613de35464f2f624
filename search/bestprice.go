package search

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/flightdesk/flightdesk/flight"
	"github.com/flightdesk/flightdesk/log"
)

// MaxScanDays caps the inclusive date range of a best-price scan.
const MaxScanDays = 30

// FindBestPrice searches every calendar date in [startDate, endDate]
// and returns the per-date cheapest flights plus the global minimum.
// Dates are searched through a bounded worker set; the quote list
// keeps calendar order regardless of completion order. Cancelling ctx
// unwinds the scan without corrupting token state.
func (s *Service) FindBestPrice(ctx context.Context, origin, destination, startDate, endDate string, passengers int) (*flight.BestPriceScan, error) {
	if _, ok := s.directory.Lookup(origin); !ok {
		return nil, &flight.ValidationError{Reason: fmt.Sprintf("unknown airport code %q", origin)}
	}
	if _, ok := s.directory.Lookup(destination); !ok {
		return nil, &flight.ValidationError{Reason: fmt.Sprintf("unknown airport code %q", destination)}
	}
	if passengers < 1 || passengers > 9 {
		return nil, &flight.ValidationError{Reason: fmt.Sprintf("passenger count %d out of range 1..9", passengers)}
	}

	start, err := time.Parse(flight.DateLayout, startDate)
	if err != nil {
		return nil, &flight.ValidationError{Reason: fmt.Sprintf("invalid start date %q, expected YYYY-MM-DD", startDate)}
	}
	end, err := time.Parse(flight.DateLayout, endDate)
	if err != nil {
		return nil, &flight.ValidationError{Reason: fmt.Sprintf("invalid end date %q, expected YYYY-MM-DD", endDate)}
	}
	if start.After(end) {
		return nil, &flight.ValidationError{Reason: "start date must not be after end date"}
	}
	days := int(end.Sub(start).Hours() / 24)
	if days > MaxScanDays {
		return nil, &flight.ValidationError{Reason: fmt.Sprintf("date range cannot exceed %d days", MaxScanDays)}
	}

	dates := make([]string, 0, days+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(flight.DateLayout))
	}

	log.Infof(ctx, "Scanning %d dates for best price %s->%s", len(dates), origin, destination)

	// Index-addressed slots keep the trend list in calendar order no
	// matter which worker finishes first.
	slots := make([]*flight.DateQuote, len(dates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.scanLimit)

	for i, date := range dates {
		i, date := i, date
		g.Go(func() error {
			if s.limiter != nil {
				if err := s.limiter.Wait(gctx); err != nil {
					return err
				}
			}

			result, err := s.Search(gctx, flight.SearchParams{
				Origin:        origin,
				Destination:   destination,
				DepartureDate: date,
				Passengers:    passengers,
			})
			if err != nil {
				return err
			}
			if len(result.Flights) == 0 {
				return nil
			}

			cheapest := cheapestOf(result.Flights)
			slots[i] = &flight.DateQuote{
				Date:       date,
				Price:      cheapest.Price.Total,
				Flight:     cheapest,
				Provenance: result.Provenance,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	quotes := make([]flight.DateQuote, 0, len(slots))
	for _, q := range slots {
		if q != nil {
			quotes = append(quotes, *q)
		}
	}
	if len(quotes) == 0 {
		return nil, &flight.NotFoundError{Reason: "no flights found in the specified date range"}
	}

	// Global minimum, ties broken by the earliest date.
	best := quotes[0]
	for _, q := range quotes[1:] {
		if q.Price < best.Price {
			best = q
		}
	}

	return &flight.BestPriceScan{
		Origin:      origin,
		Destination: destination,
		StartDate:   startDate,
		EndDate:     endDate,
		Passengers:  passengers,
		Best:        best,
		Quotes:      quotes,
	}, nil
}
