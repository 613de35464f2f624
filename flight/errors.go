package flight

import "fmt"

// ValidationError reports malformed input: an unknown airport code, a
// bad date, an out-of-range passenger count. No network call is made
// once one of these is raised.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// AuthError reports a failure to obtain an upstream access token.
// Body carries the upstream response for diagnostics when the
// exchange itself was rejected.
type AuthError struct {
	Reason string
	Body   string
}

func (e *AuthError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("auth failed: %s: %s", e.Reason, e.Body)
	}
	return "auth failed: " + e.Reason
}

// UpstreamError reports a failed live search: a non-success status, a
// timeout, or a missing token. Status is zero when no HTTP response
// was received.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream error (status %d): %s", e.Status, e.Message)
	}
	return "upstream error: " + e.Message
}

// NotFoundError reports that a date-range scan produced no flights at
// all. It is an expected outcome, not a crash.
type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string {
	return e.Reason
}
