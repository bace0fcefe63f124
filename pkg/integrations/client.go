package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/matzehuels/followgraph/pkg/cache"
	"github.com/matzehuels/followgraph/pkg/httputil"
	"github.com/matzehuels/followgraph/pkg/observability"
)

// UnlimitedRateLimitWaits makes a request wait out as many rate limit windows
// as it takes. It is the default; only cancelling the context ends the wait.
const UnlimitedRateLimitWaits = -1

// defaultRateLimitWait applies when a 429 response carries no reset header.
const defaultRateLimitWait = time.Minute

// Client provides shared HTTP functionality for provider API clients.
// It handles caching, retry logic, request pacing and common request headers.
// A Client is safe for concurrent use.
type Client struct {
	http     *http.Client
	cache    cache.Cache
	prefix   string
	ttl      time.Duration
	headers  map[string]string
	limiter  *rate.Limiter            // paces paths without their own limiter
	limiters map[string]*rate.Limiter // path suffix -> limiter
	logger   *log.Logger
	maxWaits int
	now      func() time.Time
	inflight singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client, for example one returned by
// an oauth2 token source.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLimiter paces outgoing requests. Each request waits for a token unless
// a limiter registered with WithPathLimiter matches its path.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithPathLimiter paces requests whose URL path ends with suffix. APIs that
// budget each endpoint separately get one limiter per endpoint, so a drained
// endpoint does not hold up the others.
func WithPathLimiter(suffix string, l *rate.Limiter) Option {
	return func(c *Client) {
		if l == nil {
			return
		}
		if c.limiters == nil {
			c.limiters = make(map[string]*rate.Limiter)
		}
		c.limiters[suffix] = l
	}
}

// WithLogger sets the logger used for rate limit and retry messages.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRateLimitWaits bounds how many rate limit windows a request may wait
// out before failing with ErrRateLimited. Zero fails immediately on a 429
// response; a negative value means [UnlimitedRateLimitWaits].
func WithRateLimitWaits(n int) Option {
	return func(c *Client) { c.maxWaits = max(n, UnlimitedRateLimitWaits) }
}

// NewClient creates a Client that caches under prefix with the given TTL.
// Headers are applied to all requests made through this client.
// Pass nil for headers if no default headers are needed.
func NewClient(c cache.Cache, prefix string, ttl time.Duration, headers map[string]string, opts ...Option) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	client := &Client{
		http:     NewHTTPClient(),
		cache:    c,
		prefix:   prefix,
		ttl:      ttl,
		headers:  headers,
		logger:   log.Default(),
		maxWaits: UnlimitedRateLimitWaits,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Cached retrieves a value from cache or executes fetch and caches the result.
// If refresh is true, the cache is bypassed and fetch is always called.
// The fetch function should populate v; on success, v is stored in the cache.
//
// Concurrent calls for the same key share one fetch.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	key = c.prefix + key
	if !refresh {
		if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			if json.Unmarshal(data, v) == nil {
				return nil
			}
		}
	}

	data, err, _ := c.inflight.Do(key, func() (any, error) {
		if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
			return nil, err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Debug("cache write failed", "key", key, "err", err)
		}
		return data, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(data.([]byte), v)
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
// It uses the client's default headers and waits out rate limit windows.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
//
// A 429 response blocks until the advertised reset time and retries, by
// default for as many windows as it takes. Cancelling ctx ends the wait.
func (c *Client) GetWithHeaders(ctx context.Context, rawURL string, headers map[string]string, v any) error {
	host, path := splitURL(rawURL)
	limiter := c.limiterFor(path)
	for waits := 0; ; waits++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		}

		err := c.getOnce(ctx, rawURL, headers, v)
		var rl *RateLimitError
		if !errors.As(err, &rl) || (c.maxWaits >= 0 && waits >= c.maxWaits) {
			return err
		}

		observability.HTTP().OnRateLimited(ctx, host, path, rl.Wait)
		c.logger.Warn("rate limited, waiting for the window to reset",
			"path", path,
			"wait", rl.Wait.Round(time.Second),
			"resume", c.now().Add(rl.Wait).Format(time.TimeOnly))
		if err := httputil.SleepUntil(ctx, rl.Wait); err != nil {
			return err
		}
	}
}

// limiterFor returns the limiter pacing path, or nil when requests are not
// paced.
func (c *Client) limiterFor(path string) *rate.Limiter {
	for suffix, l := range c.limiters {
		if strings.HasSuffix(path, suffix) {
			return l
		}
	}
	return c.limiter
}

func (c *Client) getOnce(ctx context.Context, rawURL string, headers map[string]string, v any) error {
	body, err := c.doRequest(ctx, rawURL, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, rawURL string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	host, path := req.URL.Host, req.URL.Path
	observability.HTTP().OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	observability.HTTP().OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := c.checkStatus(resp); err != nil {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, code)
	case code == http.StatusTooManyRequests:
		return &RateLimitError{Wait: httputil.RateLimitReset(resp.Header, c.now(), defaultRateLimitWait)}
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

func splitURL(rawURL string) (host, path string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", rawURL
	}
	return u.Host, u.Path
}
