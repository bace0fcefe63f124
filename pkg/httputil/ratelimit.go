package httputil

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

// Headers carrying rate limit state.
const (
	HeaderRateLimitReset     = "X-Rate-Limit-Reset"     // Unix seconds when the window resets
	HeaderRateLimitRemaining = "X-Rate-Limit-Remaining" // Requests left in the window
	HeaderRetryAfter         = "Retry-After"            // Seconds to wait
)

// RateLimitReset returns how long to wait before the next request, based on
// the response headers of a rate limited response. It prefers the absolute
// reset time, falls back to Retry-After, and finally to fallback.
func RateLimitReset(h http.Header, now time.Time, fallback time.Duration) time.Duration {
	if v := h.Get(HeaderRateLimitReset); v != "" {
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
			if wait := time.Unix(secs, 0).Sub(now); wait > 0 {
				return wait
			}
			return 0
		}
	}
	if v := h.Get(HeaderRetryAfter); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}

// SleepUntil blocks for d or until ctx is done, whichever comes first.
func SleepUntil(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
