package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Crawl hooks
	p := NoopCrawlHooks{}
	p.OnPassStart(ctx, "community", 10)
	p.OnNodeExplored(ctx, "community", 783214, 12, nil)
	p.OnPassComplete(ctx, "community", "complete", 10, time.Second)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "followers")
	c.OnCacheMiss(ctx, "friends")
	c.OnCacheSet(ctx, "profiles", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "api.twitter.com", "/1.1/followers/ids.json")
	h.OnResponse(ctx, "GET", "api.twitter.com", "/1.1/followers/ids.json", 200, time.Second)
	h.OnError(ctx, "GET", "api.twitter.com", "/1.1/followers/ids.json", nil)
	h.OnRateLimited(ctx, "api.twitter.com", "/1.1/followers/ids.json", time.Minute)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Crawl().(NoopCrawlHooks); !ok {
		t.Error("Crawl() should return NoopCrawlHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customCrawl := &testCrawlHooks{}
	SetCrawlHooks(customCrawl)
	if Crawl() != customCrawl {
		t.Error("SetCrawlHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Crawl().(NoopCrawlHooks); !ok {
		t.Error("Reset() should restore NoopCrawlHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testCrawlHooks{}
	SetCrawlHooks(custom)

	// Setting nil should be ignored
	SetCrawlHooks(nil)

	if Crawl() != custom {
		t.Error("SetCrawlHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testCrawlHooks struct{ NoopCrawlHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
