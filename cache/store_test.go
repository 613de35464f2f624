package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightdesk/flightdesk/flight"
)

func openTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "cache.db"), ttl)
	require.NoError(t, err)
	return store
}

func testResult() *flight.SearchResult {
	return &flight.SearchResult{
		Params: flight.SearchParams{
			Origin:        "IND",
			Destination:   "LOS",
			DepartureDate: "2024-12-15",
			Passengers:    2,
		},
		Flights: []flight.Record{{
			ID:           "AMADEUS_1",
			Airline:      flight.Airline{Code: "DL", Name: "Delta Air Lines"},
			FlightNumber: "DL156",
			Price:        flight.Price{Total: 1450.00, Currency: "USD", BaseFare: 1200.00, Taxes: 250.00},
		}},
		Timestamp:    time.Now(),
		TotalResults: 1,
		Provenance:   flight.ProvenanceLive,
		RouteType:    flight.RouteLongHaul,
	}
}

func TestSearchRoundTrip(t *testing.T) {
	store := openTestStore(t, time.Hour)
	ctx := context.Background()

	want := testResult()
	require.NoError(t, store.PutSearch(ctx, want))

	got, ok := store.GetSearch(ctx, want.Params)
	require.True(t, ok)
	assert.Equal(t, want.Params, got.Params)
	assert.Equal(t, want.Provenance, got.Provenance)
	require.Len(t, got.Flights, 1)
	assert.Equal(t, "AMADEUS_1", got.Flights[0].ID)
	assert.Equal(t, 1450.00, got.Flights[0].Price.Total)
}

func TestGetSearchMiss(t *testing.T) {
	store := openTestStore(t, time.Hour)

	_, ok := store.GetSearch(context.Background(), flight.SearchParams{
		Origin: "LAX", Destination: "JFK", DepartureDate: "2024-12-15", Passengers: 1,
	})
	assert.False(t, ok)
}

func TestGetSearchKeyedByParams(t *testing.T) {
	store := openTestStore(t, time.Hour)
	ctx := context.Background()

	want := testResult()
	require.NoError(t, store.PutSearch(ctx, want))

	// Same route, different passenger count: different entry.
	other := want.Params
	other.Passengers = 4
	_, ok := store.GetSearch(ctx, other)
	assert.False(t, ok)
}

func TestGetSearchExpired(t *testing.T) {
	store := openTestStore(t, time.Millisecond)
	ctx := context.Background()

	want := testResult()
	require.NoError(t, store.PutSearch(ctx, want))
	time.Sleep(10 * time.Millisecond)

	_, ok := store.GetSearch(ctx, want.Params)
	assert.False(t, ok, "entries beyond the TTL must not be served")
}

func TestPutSearchUpserts(t *testing.T) {
	store := openTestStore(t, time.Hour)
	ctx := context.Background()

	first := testResult()
	require.NoError(t, store.PutSearch(ctx, first))

	second := testResult()
	second.Provenance = flight.ProvenanceMock
	require.NoError(t, store.PutSearch(ctx, second))

	got, ok := store.GetSearch(ctx, first.Params)
	require.True(t, ok)
	assert.Equal(t, flight.ProvenanceMock, got.Provenance)
}

func TestRecordPriceKeepsLowest(t *testing.T) {
	store := openTestStore(t, time.Hour)
	ctx := context.Background()

	rec := testResult().Flights[0]
	require.NoError(t, store.RecordPrice(ctx, "IND", "LOS", "2024-12-15", rec))

	// A higher price must not replace the recorded low.
	higher := rec
	higher.Price.Total = 1600.00
	require.NoError(t, store.RecordPrice(ctx, "IND", "LOS", "2024-12-15", higher))

	point, ok := store.LowestPrice(ctx, "IND", "LOS", "2024-12-15")
	require.True(t, ok)
	assert.Equal(t, 1450.00, point.LowestPrice)
	assert.Equal(t, "DL", point.Airline)

	// A lower one does.
	lower := rec
	lower.Price.Total = 1285.00
	lower.Airline.Code = "TK"
	lower.FlightNumber = "TK1970"
	require.NoError(t, store.RecordPrice(ctx, "IND", "LOS", "2024-12-15", lower))

	point, ok = store.LowestPrice(ctx, "IND", "LOS", "2024-12-15")
	require.True(t, ok)
	assert.Equal(t, 1285.00, point.LowestPrice)
	assert.Equal(t, "TK1970", point.FlightNumber)
}

func TestRouteKeyNormalizesCase(t *testing.T) {
	assert.Equal(t, "IND-LOS", RouteKey("ind", "los"))

	store := openTestStore(t, time.Hour)
	ctx := context.Background()

	rec := testResult().Flights[0]
	require.NoError(t, store.RecordPrice(ctx, "ind", "los", "2024-12-15", rec))

	_, ok := store.LowestPrice(ctx, "IND", "LOS", "2024-12-15")
	assert.True(t, ok)
}

func TestCleanup(t *testing.T) {
	store := openTestStore(t, time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.PutSearch(ctx, testResult()))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, store.Cleanup(ctx))

	var count int64
	require.NoError(t, store.db.Model(&SearchRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}
