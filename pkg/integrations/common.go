package integrations

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

const httpTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when an account or resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized is returned for 401 and 403 responses: bad credentials,
	// or a protected account whose lists are not visible.
	ErrUnauthorized = errors.New("not authorized")

	// ErrRateLimited is returned when the rate limit window is exhausted and
	// the client gave up waiting for it.
	ErrRateLimited = errors.New("rate limited")
)

// RateLimitError reports a 429 response and how long the server asked the
// client to wait.
type RateLimitError struct {
	Wait time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%v: window resets in %s", ErrRateLimited, e.Wait.Round(time.Second))
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

// NewHTTPClient creates an HTTP client with a standard timeout for provider requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}
