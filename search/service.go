// Package search contains the orchestrator: the per-request decision
// between live upstream data and synthetic fallback, and the
// multi-date best-price scan.
package search

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/flightdesk/flightdesk/airports"
	"github.com/flightdesk/flightdesk/flight"
	"github.com/flightdesk/flightdesk/log"
	"github.com/flightdesk/flightdesk/mockdata"
)

// LiveSearcher is the upstream client contract.
type LiveSearcher interface {
	FetchLive(ctx context.Context, params flight.SearchParams) ([]flight.Record, error)
}

// Store is the optional local cache contract. Writes happen off the
// response path and a nil Store disables caching entirely.
type Store interface {
	GetSearch(ctx context.Context, params flight.SearchParams) (*flight.SearchResult, bool)
	PutSearch(ctx context.Context, result *flight.SearchResult) error
	RecordPrice(ctx context.Context, origin, destination, date string, rec flight.Record) error
}

// Config wires a Service.
type Config struct {
	Directory      *airports.Directory
	Live           LiveSearcher
	Mock           *mockdata.Generator
	Store          Store
	LiveEnabled    bool
	FallbackToMock bool

	// ScanConcurrency bounds parallel per-date searches in
	// FindBestPrice; ScanRate paces upstream request issue.
	ScanConcurrency int
	ScanRate        rate.Limit
}

// Service is the flight search orchestrator.
type Service struct {
	directory      *airports.Directory
	live           LiveSearcher
	mock           *mockdata.Generator
	store          Store
	liveEnabled    bool
	fallbackToMock bool
	scanLimit      int
	limiter        *rate.Limiter
}

const defaultScanConcurrency = 3

// NewService creates the orchestrator.
func NewService(cfg Config) *Service {
	limit := cfg.ScanConcurrency
	if limit <= 0 {
		limit = defaultScanConcurrency
	}
	var limiter *rate.Limiter
	if cfg.ScanRate > 0 {
		limiter = rate.NewLimiter(cfg.ScanRate, 1)
	}
	return &Service{
		directory:      cfg.Directory,
		live:           cfg.Live,
		mock:           cfg.Mock,
		store:          cfg.Store,
		liveEnabled:    cfg.LiveEnabled && cfg.Live != nil,
		fallbackToMock: cfg.FallbackToMock,
		scanLimit:      limit,
		limiter:        limiter,
	}
}

// ValidateParams checks a search request before anything touches the
// network: both airports must resolve, dates must be well-formed
// calendar dates, passengers must be 1..9.
func (s *Service) ValidateParams(params flight.SearchParams) error {
	if _, ok := s.directory.Lookup(params.Origin); !ok {
		return &flight.ValidationError{Reason: fmt.Sprintf("unknown airport code %q", params.Origin)}
	}
	if _, ok := s.directory.Lookup(params.Destination); !ok {
		return &flight.ValidationError{Reason: fmt.Sprintf("unknown airport code %q", params.Destination)}
	}
	if _, err := time.Parse(flight.DateLayout, params.DepartureDate); err != nil {
		return &flight.ValidationError{Reason: fmt.Sprintf("invalid departure date %q, expected YYYY-MM-DD", params.DepartureDate)}
	}
	if params.ReturnDate != "" {
		if _, err := time.Parse(flight.DateLayout, params.ReturnDate); err != nil {
			return &flight.ValidationError{Reason: fmt.Sprintf("invalid return date %q, expected YYYY-MM-DD", params.ReturnDate)}
		}
	}
	if params.Passengers < 1 || params.Passengers > 9 {
		return &flight.ValidationError{Reason: fmt.Sprintf("passenger count %d out of range 1..9", params.Passengers)}
	}
	return nil
}

// Search resolves one search request. Policy, in order: cached live
// result, live upstream, mock fallback, tagged-empty. Auth and
// upstream failures degrade to mock and never reach the caller raw;
// the only error Search itself returns is a ValidationError.
func (s *Service) Search(ctx context.Context, params flight.SearchParams) (*flight.SearchResult, error) {
	if err := s.ValidateParams(params); err != nil {
		return nil, err
	}

	routeType := s.mock.Classify(params.Origin, params.Destination)

	if s.liveEnabled {
		if s.store != nil {
			if cached, ok := s.store.GetSearch(ctx, params); ok {
				log.Debugf(ctx, "Cache hit for %s->%s %s", params.Origin, params.Destination, params.DepartureDate)
				return cached, nil
			}
		}

		records, err := s.live.FetchLive(ctx, params)
		if err != nil {
			log.Warnf(ctx, "Live search failed, degrading: %v", err)
		}
		if len(records) > 0 {
			result := s.newResult(params, records, flight.ProvenanceLive, routeType)
			s.persist(ctx, result)
			return result, nil
		}
	}

	if s.fallbackToMock {
		records, rt := s.mock.Flights(params)
		result := s.newResult(params, records, flight.ProvenanceMock, rt)
		s.persist(ctx, result)
		return result, nil
	}

	result := s.newResult(params, nil, flight.ProvenanceNone, routeType)
	result.Err = "no flight data available"
	return result, nil
}

func (s *Service) newResult(params flight.SearchParams, records []flight.Record, prov flight.Provenance, rt flight.RouteType) *flight.SearchResult {
	return &flight.SearchResult{
		Params:       params,
		Flights:      records,
		Timestamp:    time.Now(),
		TotalResults: len(records),
		Provenance:   prov,
		RouteType:    rt,
	}
}

// persist writes the result and its cheapest price to the cache off
// the response path. Failures are logged, never surfaced.
func (s *Service) persist(ctx context.Context, result *flight.SearchResult) {
	if s.store == nil || len(result.Flights) == 0 {
		return
	}

	cheapest := cheapestOf(result.Flights)
	bg := context.WithoutCancel(ctx)
	go func() {
		writeCtx, cancel := context.WithTimeout(bg, 5*time.Second)
		defer cancel()
		if err := s.store.PutSearch(writeCtx, result); err != nil {
			log.Warnf(writeCtx, "Cache write failed: %v", err)
		}
		if err := s.store.RecordPrice(writeCtx, result.Params.Origin, result.Params.Destination, result.Params.DepartureDate, cheapest); err != nil {
			log.Warnf(writeCtx, "Price tracking write failed: %v", err)
		}
	}()
}

// cheapestOf picks the minimum by total price, ties broken by first
// occurrence.
func cheapestOf(records []flight.Record) flight.Record {
	cheapest := records[0]
	for _, r := range records[1:] {
		if r.Price.Total < cheapest.Price.Total {
			cheapest = r
		}
	}
	return cheapest
}
