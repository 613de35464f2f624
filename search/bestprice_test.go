package search

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightdesk/flightdesk/flight"
)

func TestFindBestPrice(t *testing.T) {
	live := &stubLive{byDate: map[string][]flight.Record{
		"2024-12-15": {liveRecord("A", 910.00), liveRecord("B", 640.00)},
		"2024-12-16": {liveRecord("C", 580.00)},
		"2024-12-17": {liveRecord("D", 720.00)},
	}}
	svc := newTestService(t, Config{Live: live, LiveEnabled: true, FallbackToMock: false})

	scan, err := svc.FindBestPrice(context.Background(), "IND", "LOS", "2024-12-15", "2024-12-17", 1)
	require.NoError(t, err)

	require.Len(t, scan.Quotes, 3)
	assert.Equal(t, "2024-12-16", scan.Best.Date)
	assert.Equal(t, 580.00, scan.Best.Price)
	assert.Equal(t, "C", scan.Best.Flight.ID)
	assert.Equal(t, flight.ProvenanceLive, scan.Best.Provenance)

	// Per-date quotes carry the date's cheapest option.
	assert.Equal(t, 640.00, scan.Quotes[0].Price)
	assert.Equal(t, "B", scan.Quotes[0].Flight.ID)
}

func TestFindBestPriceQuotesKeepCalendarOrder(t *testing.T) {
	byDate := map[string][]flight.Record{}
	for _, d := range []string{"2024-12-10", "2024-12-11", "2024-12-12", "2024-12-13", "2024-12-14", "2024-12-15", "2024-12-16"} {
		byDate[d] = []flight.Record{liveRecord("X", 500.00)}
	}
	live := &stubLive{byDate: byDate}
	svc := newTestService(t, Config{Live: live, LiveEnabled: true, FallbackToMock: false, ScanConcurrency: 4})

	scan, err := svc.FindBestPrice(context.Background(), "IND", "LOS", "2024-12-10", "2024-12-16", 1)
	require.NoError(t, err)

	require.Len(t, scan.Quotes, 7)
	dates := make([]string, len(scan.Quotes))
	for i, q := range scan.Quotes {
		dates[i] = q.Date
	}
	assert.True(t, sort.StringsAreSorted(dates), "quotes must stay in calendar order: %v", dates)
	assert.Equal(t, "2024-12-10", dates[0])
	assert.Equal(t, "2024-12-16", dates[6])
}

func TestFindBestPriceSkipsEmptyDates(t *testing.T) {
	live := &stubLive{byDate: map[string][]flight.Record{
		"2024-12-15": {liveRecord("A", 910.00)},
		// the 16th yields nothing
		"2024-12-17": {liveRecord("B", 450.00)},
	}}
	svc := newTestService(t, Config{Live: live, LiveEnabled: true, FallbackToMock: false})

	scan, err := svc.FindBestPrice(context.Background(), "IND", "LOS", "2024-12-15", "2024-12-17", 1)
	require.NoError(t, err)

	require.Len(t, scan.Quotes, 2)
	assert.Equal(t, "2024-12-15", scan.Quotes[0].Date)
	assert.Equal(t, "2024-12-17", scan.Quotes[1].Date)
	assert.Equal(t, 450.00, scan.Best.Price)
}

func TestFindBestPriceTieTakesEarliestDate(t *testing.T) {
	live := &stubLive{byDate: map[string][]flight.Record{
		"2024-12-15": {liveRecord("A", 500.00)},
		"2024-12-16": {liveRecord("B", 500.00)},
		"2024-12-17": {liveRecord("C", 500.00)},
	}}
	svc := newTestService(t, Config{Live: live, LiveEnabled: true, FallbackToMock: false})

	scan, err := svc.FindBestPrice(context.Background(), "IND", "LOS", "2024-12-15", "2024-12-17", 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-15", scan.Best.Date)
	assert.Equal(t, "A", scan.Best.Flight.ID)
}

func TestFindBestPriceSingleDate(t *testing.T) {
	live := &stubLive{byDate: map[string][]flight.Record{
		"2024-12-15": {liveRecord("A", 610.00)},
	}}
	svc := newTestService(t, Config{Live: live, LiveEnabled: true, FallbackToMock: false})

	scan, err := svc.FindBestPrice(context.Background(), "IND", "LOS", "2024-12-15", "2024-12-15", 1)
	require.NoError(t, err)
	require.Len(t, scan.Quotes, 1)
	assert.Equal(t, "2024-12-15", scan.Best.Date)
}

func TestFindBestPriceMockProvenance(t *testing.T) {
	svc := newTestService(t, Config{LiveEnabled: false, FallbackToMock: true})

	scan, err := svc.FindBestPrice(context.Background(), "LAX", "JFK", "2024-12-15", "2024-12-16", 2)
	require.NoError(t, err)

	require.Len(t, scan.Quotes, 2)
	for _, q := range scan.Quotes {
		assert.Equal(t, flight.ProvenanceMock, q.Provenance)
	}
	assert.Equal(t, 485.00, scan.Best.Price)
}

func TestFindBestPriceNotFound(t *testing.T) {
	live := &stubLive{byDate: map[string][]flight.Record{}}
	svc := newTestService(t, Config{Live: live, LiveEnabled: true, FallbackToMock: false})

	_, err := svc.FindBestPrice(context.Background(), "IND", "LOS", "2024-12-15", "2024-12-17", 1)

	var nfErr *flight.NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Contains(t, nfErr.Reason, "no flights found")
}

func TestFindBestPriceValidation(t *testing.T) {
	svc := newTestService(t, Config{FallbackToMock: true})

	cases := []struct {
		name                            string
		origin, destination, start, end string
		passengers                      int
		reason                          string
	}{
		{"unknown origin", "ZZZ", "LOS", "2024-12-15", "2024-12-16", 1, "unknown airport"},
		{"unknown destination", "IND", "ZZZ", "2024-12-15", "2024-12-16", 1, "unknown airport"},
		{"bad start date", "IND", "LOS", "soon", "2024-12-16", 1, "invalid start date"},
		{"bad end date", "IND", "LOS", "2024-12-15", "later", 1, "invalid end date"},
		{"reversed range", "IND", "LOS", "2024-12-20", "2024-12-15", 1, "must not be after"},
		{"range too wide", "IND", "LOS", "2024-12-01", "2025-01-01", 1, "cannot exceed 30 days"},
		{"zero passengers", "IND", "LOS", "2024-12-15", "2024-12-16", 0, "out of range"},
		{"too many passengers", "IND", "LOS", "2024-12-15", "2024-12-16", 10, "out of range"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.FindBestPrice(context.Background(), tc.origin, tc.destination, tc.start, tc.end, tc.passengers)
			var valErr *flight.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Contains(t, valErr.Reason, tc.reason)
		})
	}

	// Thirty days inclusive is the widest accepted range.
	scan, err := svc.FindBestPrice(context.Background(), "IND", "LOS", "2024-12-01", "2024-12-31", 1)
	require.NoError(t, err)
	assert.Len(t, scan.Quotes, 31)
}

func TestFindBestPriceConcurrencyBound(t *testing.T) {
	byDate := map[string][]flight.Record{}
	day, err := time.Parse(flight.DateLayout, "2024-12-10")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		byDate[day.AddDate(0, 0, i).Format(flight.DateLayout)] = []flight.Record{liveRecord("X", 500.00)}
	}
	live := &stubLive{byDate: byDate}
	svc := newTestService(t, Config{Live: live, LiveEnabled: true, FallbackToMock: false, ScanConcurrency: 2})

	scan, err := svc.FindBestPrice(context.Background(), "IND", "LOS", "2024-12-10", "2024-12-19", 1)
	require.NoError(t, err)

	assert.Len(t, scan.Quotes, 10)
	assert.Equal(t, 10, live.calls, "one upstream call per date")
}
