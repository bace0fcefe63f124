package cli

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/followgraph/pkg/observability"
)

// runStats counts API and cache traffic during a crawl. It implements the
// cache and HTTP hook interfaces.
type runStats struct {
	logger *log.Logger

	requests    atomic.Int64
	errors      atomic.Int64
	rateLimited atomic.Int64
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
}

var (
	_ observability.CacheHooks = (*runStats)(nil)
	_ observability.HTTPHooks  = (*runStats)(nil)
)

// installRunStats registers a runStats as the global cache and HTTP hooks.
// The returned function restores the no-op hooks.
func installRunStats(l *log.Logger) (*runStats, func()) {
	s := &runStats{logger: l}
	observability.SetCacheHooks(s)
	observability.SetHTTPHooks(s)
	return s, observability.Reset
}

func (s *runStats) OnCacheHit(ctx context.Context, keyType string) { s.cacheHits.Add(1) }

func (s *runStats) OnCacheMiss(ctx context.Context, keyType string) { s.cacheMisses.Add(1) }

func (s *runStats) OnCacheSet(ctx context.Context, keyType string, size int) {}

func (s *runStats) OnRequest(ctx context.Context, method, host, path string) {
	s.requests.Add(1)
}

func (s *runStats) OnResponse(ctx context.Context, method, host, path string, status int, d time.Duration) {
	s.logger.Debug("api response", "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (s *runStats) OnError(ctx context.Context, method, host, path string, err error) {
	s.errors.Add(1)
}

func (s *runStats) OnRateLimited(ctx context.Context, host, path string, wait time.Duration) {
	s.rateLimited.Add(1)
}
