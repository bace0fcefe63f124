// Package integrations provides HTTP clients for social network APIs.
//
// # Overview
//
// Each network has its own subpackage:
//
//   - [twitter]: follower and friend lists, handle resolution and profile
//     lookups against the Twitter v1.1 REST API
//
// # Shared Infrastructure
//
// The [Client] type provides the HTTP plumbing every network client needs:
//
//   - Response caching through any [cache.Cache] backend
//   - Retry with exponential backoff for network errors and 5xx responses
//   - Request pacing with a token bucket limiter
//   - Waiting out 429 responses until the advertised window reset
//
// Errors are reported with the sentinels [ErrNotFound], [ErrUnauthorized],
// [ErrNetwork] and [ErrRateLimited], matched with errors.Is.
//
// [twitter]: github.com/matzehuels/followgraph/pkg/integrations/twitter
// [cache.Cache]: github.com/matzehuels/followgraph/pkg/cache.Cache
package integrations
