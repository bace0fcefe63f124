package cli

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/followgraph/pkg/observability"
)

func TestInstallRunStats(t *testing.T) {
	ctx := context.Background()
	s, restore := installRunStats(log.New(io.Discard))

	observability.HTTP().OnRequest(ctx, "GET", "api.example.com", "/1.1/users/show.json")
	observability.HTTP().OnResponse(ctx, "GET", "api.example.com", "/1.1/users/show.json", 200, time.Millisecond)
	observability.HTTP().OnError(ctx, "GET", "api.example.com", "/1.1/users/show.json", errors.New("boom"))
	observability.HTTP().OnRateLimited(ctx, "api.example.com", "/1.1/followers/ids.json", time.Second)
	observability.Cache().OnCacheHit(ctx, "twitter")
	observability.Cache().OnCacheMiss(ctx, "twitter")
	observability.Cache().OnCacheMiss(ctx, "twitter")

	restore()
	observability.HTTP().OnRequest(ctx, "GET", "api.example.com", "/")

	if got := s.requests.Load(); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}
	if got := s.errors.Load(); got != 1 {
		t.Errorf("errors = %d, want 1", got)
	}
	if got := s.rateLimited.Load(); got != 1 {
		t.Errorf("rateLimited = %d, want 1", got)
	}
	if got := s.cacheHits.Load(); got != 1 {
		t.Errorf("cacheHits = %d, want 1", got)
	}
	if got := s.cacheMisses.Load(); got != 2 {
		t.Errorf("cacheMisses = %d, want 2", got)
	}
}
