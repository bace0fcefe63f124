// Package cache stores provider responses between runs.
//
// Follower and friend lists change slowly, and the provider's rate limits
// make every request expensive: with a cache, re-running a crawl against the
// same seeds replays earlier responses instead of waiting out fresh rate
// limit windows.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: JSON files under the user cache directory (the default)
//   - [RedisCache]: a Redis server, shared between machines
//   - [NullCache]: stores nothing, used for --no-cache
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss with ok=false and a nil error. Implementations must be
// safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}
