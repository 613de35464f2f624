// Package amadeus implements the live flight-pricing upstream: token
// lifecycle, the flight-offers query, and normalization of upstream
// offers into the internal record shape. Any Amadeus-API-compatible
// provider can sit behind it via the base URL.
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/flightdesk/flightdesk/flight"
	"github.com/flightdesk/flightdesk/log"
)

const (
	// BaseURLProduction is the default upstream endpoint.
	BaseURLProduction = "https://api.amadeus.com"

	// DefaultSearchTimeout bounds a single flight-offers query.
	DefaultSearchTimeout = 15 * time.Second

	// DefaultMaxResults caps how many offers one query requests.
	DefaultMaxResults = 5

	// DefaultCurrency is the currency code pinned on every query.
	DefaultCurrency = "USD"

	offersPath = "/v2/shopping/flight-offers"
)

// Client queries the live flight-offers endpoint.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokens        *TokenManager
	currency      string
	maxResults    int
	baseFareRatio float64
}

// NewClient creates a live-search client. Empty currency and
// non-positive maxResults fall back to the defaults.
func NewClient(clientID, clientSecret, baseURL, currency string, maxResults int) *Client {
	if baseURL == "" {
		baseURL = BaseURLProduction
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Client{
		baseURL:       baseURL,
		httpClient:    &http.Client{Timeout: DefaultSearchTimeout},
		tokens:        NewTokenManager(clientID, clientSecret, baseURL),
		currency:      currency,
		maxResults:    maxResults,
		baseFareRatio: DefaultBaseFareRatio,
	}
}

// Tokens exposes the token manager, mainly for diagnostics.
func (c *Client) Tokens() *TokenManager {
	return c.tokens
}

// SetBaseFareRatio overrides the base-fare estimate used when the
// upstream omits the base field.
func (c *Client) SetBaseFareRatio(ratio float64) {
	if ratio > 0 && ratio <= 1 {
		c.baseFareRatio = ratio
	}
}

// FetchLive runs one live flight-offers query and returns normalized
// records. A malformed offer is skipped with a log line; only a
// request-level failure aborts the batch.
func (c *Client) FetchLive(ctx context.Context, params flight.SearchParams) ([]flight.Record, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		log.Warnf(ctx, "Live search has no token: %v", err)
		return nil, &flight.UpstreamError{Message: "no token: " + err.Error()}
	}

	q := url.Values{}
	q.Set("originLocationCode", params.Origin)
	q.Set("destinationLocationCode", params.Destination)
	q.Set("departureDate", params.DepartureDate)
	q.Set("adults", strconv.Itoa(params.Passengers))
	q.Set("max", strconv.Itoa(c.maxResults))
	q.Set("currencyCode", c.currency)
	if params.ReturnDate != "" {
		q.Set("returnDate", params.ReturnDate)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+offersPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &flight.UpstreamError{Message: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf(ctx, "Flight offers request failed: %v", err)
		return nil, &flight.UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Errorf(ctx, "Flight offers query returned status %d", resp.StatusCode)
		return nil, &flight.UpstreamError{Status: resp.StatusCode, Message: string(body)}
	}

	var searchResp offerSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, &flight.UpstreamError{Message: "malformed response: " + err.Error()}
	}

	records := make([]flight.Record, 0, len(searchResp.Data))
	for i, offer := range searchResp.Data {
		record, err := c.normalizeOffer(offer, i, params.DepartureDate)
		if err != nil {
			// Partial success beats total failure: drop the one bad offer.
			log.Warnf(ctx, "Skipping offer %d: %v", i, err)
			continue
		}
		records = append(records, record)
	}

	log.Infof(ctx, "Live search %s returned %d offers, %d normalized",
		fmt.Sprintf("%s->%s %s", params.Origin, params.Destination, params.DepartureDate),
		len(searchResp.Data), len(records))

	return records, nil
}
