package amadeus

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/flightdesk/flightdesk/flight"
	"github.com/flightdesk/flightdesk/log"
)

const (
	// TokenMargin is the safety buffer subtracted from the upstream
	// TTL to absorb clock skew and in-flight request latency. A token
	// handed to a caller always has strictly more than this much
	// validity left.
	TokenMargin = 60 * time.Second

	// DefaultAuthTimeout bounds the token exchange request.
	DefaultAuthTimeout = 10 * time.Second

	tokenPath = "/v1/security/oauth2/token"
)

// TokenManager acquires and caches an upstream bearer token via the
// OAuth2 client-credentials flow. The token never leaves this type
// except as the opaque string handed to the Authorization header.
type TokenManager struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpClient   *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewTokenManager creates a token manager for the given credentials.
func NewTokenManager(clientID, clientSecret, baseURL string) *TokenManager {
	return &TokenManager{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: DefaultAuthTimeout},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// Token returns a bearer token with more than TokenMargin of validity
// remaining, exchanging credentials with the upstream auth endpoint
// only when the cached token is absent or too close to expiry.
//
// The mutex is held across the exchange so concurrent callers never
// trigger redundant exchanges: late arrivals block on the lock and
// reuse the freshly cached token. The exchange itself is detached
// from the caller's cancellation so an aborted enclosing scan still
// leaves a completed, cached token behind.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && time.Now().Before(m.expiresAt.Add(-TokenMargin)) {
		return m.token, nil
	}

	if m.clientID == "" || m.clientSecret == "" {
		return "", &flight.AuthError{Reason: "missing credentials"}
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", m.clientID)
	form.Set("client_secret", m.clientSecret)

	exchangeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DefaultAuthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(exchangeCtx, http.MethodPost, m.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &flight.AuthError{Reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		log.Errorf(ctx, "Token exchange request failed: %v", err)
		return "", &flight.AuthError{Reason: "exchange failed: " + err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Errorf(ctx, "Token exchange rejected: %s", resp.Status)
		return "", &flight.AuthError{Reason: "upstream rejected", Body: string(body)}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", &flight.AuthError{Reason: "malformed token response: " + err.Error()}
	}

	m.token = tr.AccessToken
	m.expiresAt = time.Now().Add(time.Duration(tr.ExpiresIn)*time.Second - TokenMargin)
	log.Debugf(ctx, "Obtained upstream access token, valid until %s", m.expiresAt.Format(time.RFC3339))

	return m.token, nil
}
