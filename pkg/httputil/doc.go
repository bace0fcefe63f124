// Package httputil provides HTTP helpers shared by the provider clients.
//
// # Retry
//
// [Retry] re-runs an operation that failed with a [RetryableError]:
//
//   - Network errors
//   - 5xx server errors
//
// The delay doubles after each attempt. Other errors are returned at once.
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetch(ctx)
//	})
//
// # Rate limits
//
// Rate limited responses (HTTP 429) are not retried by [Retry]. Instead
// [RateLimitReset] reads the reset time the server advertises and
// [SleepUntil] blocks until then, returning early when the context is
// cancelled.
package httputil
