// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about crawl passes, cache operations, and API calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCrawlHooks(&myCrawlHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Crawl().OnPassStart(ctx, "community", len(ids))
//	// ... explore ...
//	observability.Crawl().OnPassComplete(ctx, "community", "complete", processed, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Crawl Hooks
// =============================================================================

// CrawlHooks receives events from exploration passes.
type CrawlHooks interface {
	// OnPassStart records the start of a pass over total nodes.
	OnPassStart(ctx context.Context, pass string, total int)

	// OnNodeExplored records one node of a pass. err is non-nil when the
	// provider failed and the node was skipped.
	OnNodeExplored(ctx context.Context, pass string, node int64, edgesAdded int, err error)

	// OnPassComplete records the end of a pass; outcome is "complete" or "partial".
	OnPassComplete(ctx context.Context, pass, outcome string, processed int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)

	// OnRateLimited records a wait for the provider's rate-limit window.
	OnRateLimited(ctx context.Context, host, path string, wait time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCrawlHooks is a no-op implementation of CrawlHooks.
type NoopCrawlHooks struct{}

func (NoopCrawlHooks) OnPassStart(context.Context, string, int)                           {}
func (NoopCrawlHooks) OnNodeExplored(context.Context, string, int64, int, error)          {}
func (NoopCrawlHooks) OnPassComplete(context.Context, string, string, int, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}
func (NoopHTTPHooks) OnRateLimited(context.Context, string, string, time.Duration)           {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	crawlHooks CrawlHooks = NoopCrawlHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetCrawlHooks registers custom crawl hooks.
// This should be called once at application startup before any crawl starts.
func SetCrawlHooks(h CrawlHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		crawlHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Crawl returns the registered crawl hooks.
func Crawl() CrawlHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return crawlHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	crawlHooks = NoopCrawlHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
