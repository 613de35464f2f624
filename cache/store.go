// Package cache persists past search results and observed lowest
// prices in a local sqlite database. It is an optional collaborator:
// the orchestrator works identically without it.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/flightdesk/flightdesk/flight"
	"github.com/flightdesk/flightdesk/log"
)

// SearchRecord is one cached search result, keyed by the search params.
type SearchRecord struct {
	Key           string `gorm:"primaryKey"`
	Origin        string
	Destination   string
	DepartureDate string
	Passengers    int
	Provenance    string
	Results       []byte
	CreatedAt     time.Time
}

func (SearchRecord) TableName() string { return "flight_searches" }

// PricePoint tracks the lowest observed price for a route on a date.
type PricePoint struct {
	Route        string `gorm:"primaryKey"`
	Date         string `gorm:"primaryKey"`
	LowestPrice  float64
	Airline      string
	FlightNumber string
	RecordedAt   time.Time
}

func (PricePoint) TableName() string { return "price_tracking" }

// Store is a sqlite-backed cache with a freshness TTL on reads.
type Store struct {
	db  *gorm.DB
	ttl time.Duration
}

// Open opens (creating if needed) the cache database at path.
func Open(path string, ttl time.Duration) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	if err := db.AutoMigrate(&SearchRecord{}, &PricePoint{}); err != nil {
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}
	return &Store{db: db, ttl: ttl}, nil
}

// SearchKey builds the cache key for a set of search params.
func SearchKey(params flight.SearchParams) string {
	return fmt.Sprintf("%s:%s:%s:%d", params.Origin, params.Destination, params.DepartureDate, params.Passengers)
}

// RouteKey builds the price-tracking key for a route.
func RouteKey(origin, destination string) string {
	return strings.ToUpper(origin) + "-" + strings.ToUpper(destination)
}

// GetSearch returns a cached result for the params if one exists and
// is younger than the TTL.
func (s *Store) GetSearch(ctx context.Context, params flight.SearchParams) (*flight.SearchResult, bool) {
	var rec SearchRecord
	cutoff := time.Now().Add(-s.ttl)
	err := s.db.WithContext(ctx).
		Where("key = ? AND created_at > ?", SearchKey(params), cutoff).
		First(&rec).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warnf(ctx, "Cache read failed: %v", err)
		}
		return nil, false
	}

	var result flight.SearchResult
	if err := json.Unmarshal(rec.Results, &result); err != nil {
		log.Warnf(ctx, "Cache entry %s is corrupt: %v", rec.Key, err)
		return nil, false
	}
	return &result, true
}

// PutSearch upserts a search result.
func (s *Store) PutSearch(ctx context.Context, result *flight.SearchResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	rec := SearchRecord{
		Key:           SearchKey(result.Params),
		Origin:        result.Params.Origin,
		Destination:   result.Params.Destination,
		DepartureDate: result.Params.DepartureDate,
		Passengers:    result.Params.Passengers,
		Provenance:    string(result.Provenance),
		Results:       payload,
		CreatedAt:     time.Now(),
	}
	return s.db.WithContext(ctx).Save(&rec).Error
}

// RecordPrice keeps the lowest observed price for a route and date.
func (s *Store) RecordPrice(ctx context.Context, origin, destination, date string, rec flight.Record) error {
	route := RouteKey(origin, destination)

	var existing PricePoint
	err := s.db.WithContext(ctx).
		Where("route = ? AND date = ?", route, date).
		First(&existing).Error
	if err == nil && existing.LowestPrice <= rec.Price.Total {
		return nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	point := PricePoint{
		Route:        route,
		Date:         date,
		LowestPrice:  rec.Price.Total,
		Airline:      rec.Airline.Code,
		FlightNumber: rec.FlightNumber,
		RecordedAt:   time.Now(),
	}
	return s.db.WithContext(ctx).Save(&point).Error
}

// LowestPrice returns the recorded lowest price for a route and date.
func (s *Store) LowestPrice(ctx context.Context, origin, destination, date string) (*PricePoint, bool) {
	var point PricePoint
	err := s.db.WithContext(ctx).
		Where("route = ? AND date = ?", RouteKey(origin, destination), date).
		First(&point).Error
	if err != nil {
		return nil, false
	}
	return &point, true
}

// Cleanup removes cached searches older than the TTL.
func (s *Store) Cleanup(ctx context.Context) error {
	cutoff := time.Now().Add(-s.ttl)
	return s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&SearchRecord{}).Error
}
