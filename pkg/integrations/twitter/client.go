package twitter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/matzehuels/followgraph/pkg/buildinfo"
	"github.com/matzehuels/followgraph/pkg/cache"
	"github.com/matzehuels/followgraph/pkg/community"
	ferrors "github.com/matzehuels/followgraph/pkg/errors"
	"github.com/matzehuels/followgraph/pkg/graph"
	"github.com/matzehuels/followgraph/pkg/integrations"
)

// Defaults for Config.
const (
	DefaultBaseURL           = "https://api.twitter.com"
	DefaultRequestsPerWindow = 15
	DefaultWindow            = 15 * time.Minute
	DefaultCacheTTL          = 7 * 24 * time.Hour

	// idsPageSize is the largest page followers/ids.json returns.
	idsPageSize = 5000
)

// Endpoints, relative to /1.1/.
const (
	endpointShow      = "users/show.json"
	endpointLookup    = "users/lookup.json"
	endpointFollowers = "followers/ids.json"
	endpointFriends   = "friends/ids.json"
)

// endpointBudgets holds the requests per 15 minutes the API grants each
// endpoint under app-only auth. Zero means Config.RequestsPerWindow.
var endpointBudgets = map[string]int{
	endpointShow:      900,
	endpointLookup:    300,
	endpointFollowers: 0,
	endpointFriends:   0,
}

// Config configures a Client.
type Config struct {
	BaseURL string // API root (default: DefaultBaseURL)

	// Either BearerToken, or ConsumerKey and ConsumerSecret exchanged for a
	// token at BaseURL/oauth2/token.
	BearerToken    string
	ConsumerKey    string
	ConsumerSecret string

	// Requests allowed per Window on each of followers/ids and friends/ids.
	// Every endpoint is paced by its own limiter, which lets a full window
	// burst and then spaces requests evenly; users/show and users/lookup get
	// their larger budgets scaled to Window. A negative value disables pacing.
	RequestsPerWindow int
	Window            time.Duration

	CacheTTL time.Duration // default: DefaultCacheTTL
	Refresh  bool          // bypass cached responses

	// MaxListSize stops paging a follower or friend list after this many IDs
	// (0: no limit).
	MaxListSize int

	// HTTPClient overrides the transport used for token and API requests.
	HTTPClient *http.Client
	Logger     *log.Logger
}

// Client talks to the Twitter API. It is safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
	refresh bool
	maxList int
	logger  *log.Logger
}

var _ community.Provider = (*Client)(nil)

// NewClient creates an authenticated client. Responses are cached in c,
// which may be nil.
func NewClient(cfg Config, c cache.Cache) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if err := ferrors.ValidateURL(cfg.BaseURL); err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	httpClient, err := authClient(cfg, base)
	if err != nil {
		return nil, err
	}

	opts := []integrations.Option{
		integrations.WithHTTPClient(httpClient),
		integrations.WithLogger(cfg.Logger),
	}
	for endpoint, l := range newLimiters(cfg.RequestsPerWindow, cfg.Window) {
		opts = append(opts, integrations.WithPathLimiter("/"+endpoint, l))
	}

	headers := map[string]string{"User-Agent": buildinfo.UserAgent()}
	return &Client{
		Client:  integrations.NewClient(c, "twitter:", cfg.CacheTTL, headers, opts...),
		baseURL: base,
		refresh: cfg.Refresh,
		maxList: cfg.MaxListSize,
		logger:  cfg.Logger,
	}, nil
}

// authClient returns an HTTP client that adds the bearer token to every
// request.
func authClient(cfg Config, base string) (*http.Client, error) {
	transport := cfg.HTTPClient
	if transport == nil {
		transport = integrations.NewHTTPClient()
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, transport)

	switch {
	case cfg.BearerToken != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.BearerToken, TokenType: "Bearer"})
		return oauth2.NewClient(ctx, ts), nil
	case cfg.ConsumerKey != "" && cfg.ConsumerSecret != "":
		cc := &clientcredentials.Config{
			ClientID:     cfg.ConsumerKey,
			ClientSecret: cfg.ConsumerSecret,
			TokenURL:     base + "/oauth2/token",
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		return cc.Client(ctx), nil
	default:
		return nil, ferrors.New(ferrors.ErrCodeInvalidConfig,
			"twitter credentials missing: set a bearer token or a consumer key and secret")
	}
}

// newLimiters returns one limiter per endpoint, or nil when perWindow is
// negative.
func newLimiters(perWindow int, window time.Duration) map[string]*rate.Limiter {
	if perWindow < 0 {
		return nil
	}
	if window <= 0 {
		window = DefaultWindow
	}
	limiters := make(map[string]*rate.Limiter, len(endpointBudgets))
	for endpoint, budget := range endpointBudgets {
		n := perWindow
		if budget > 0 {
			// Budgets are per 15 minutes; keep the same rate for other windows.
			n = max(1, int(int64(budget)*int64(window)/int64(DefaultWindow)))
		}
		limiters[endpoint] = newLimiter(n, window)
	}
	return limiters
}

func newLimiter(perWindow int, window time.Duration) *rate.Limiter {
	if perWindow < 0 {
		return nil
	}
	if perWindow == 0 {
		perWindow = DefaultRequestsPerWindow
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return rate.NewLimiter(rate.Every(window/time.Duration(perWindow)), perWindow)
}

// ResolveHandle returns the numeric ID of the account with the given screen
// name.
func (c *Client) ResolveHandle(ctx context.Context, handle string) (graph.NodeID, error) {
	handle = ferrors.NormalizeHandle(handle)
	q := url.Values{"screen_name": {handle}}

	var u user
	err := c.Cached(ctx, cache.Key("users:show", strings.ToLower(handle)), c.refresh, &u, func() error {
		return c.Get(ctx, c.endpoint(endpointShow, q), &u)
	})
	if err != nil {
		return 0, classify(err, "look up @%s", handle)
	}
	return graph.NodeID(u.ID), nil
}

// FetchFollowerIDs returns the IDs of the accounts following id.
func (c *Client) FetchFollowerIDs(ctx context.Context, id graph.NodeID) ([]graph.NodeID, error) {
	return c.fetchIDs(ctx, endpointFollowers, id)
}

// FetchFriendIDs returns the IDs of the accounts id follows.
func (c *Client) FetchFriendIDs(ctx context.Context, id graph.NodeID) ([]graph.NodeID, error) {
	return c.fetchIDs(ctx, endpointFriends, id)
}

func (c *Client) fetchIDs(ctx context.Context, path string, id graph.NodeID) ([]graph.NodeID, error) {
	var ids []graph.NodeID
	for cursor := int64(-1); cursor != 0; {
		q := url.Values{
			"user_id": {id.String()},
			"cursor":  {strconv.FormatInt(cursor, 10)},
			"count":   {strconv.Itoa(idsPageSize)},
		}

		var page idPage
		key := cache.Key("ids", path, int64(id), cursor)
		err := c.Cached(ctx, key, c.refresh, &page, func() error {
			return c.Get(ctx, c.endpoint(path, q), &page)
		})
		if err != nil {
			return nil, classify(err, "%s for %d", path, id)
		}

		for _, v := range page.IDs {
			ids = append(ids, graph.NodeID(v))
		}
		if c.maxList > 0 && len(ids) >= c.maxList {
			c.logger.Debug("list truncated", "endpoint", path, "node", id, "limit", c.maxList)
			return ids[:c.maxList], nil
		}
		cursor = page.NextCursor
	}
	return ids, nil
}

// FetchProfiles looks up the profiles of ids, which must hold at most
// community.MaxLookupBatch entries. Suspended and deleted accounts are
// missing from the result.
func (c *Client) FetchProfiles(ctx context.Context, ids []graph.NodeID) ([]community.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > community.MaxLookupBatch {
		return nil, ferrors.New(ferrors.ErrCodeInvalidInput,
			"lookup of %d ids exceeds the limit of %d", len(ids), community.MaxLookupBatch)
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	joined := strings.Join(parts, ",")
	q := url.Values{"user_id": {joined}, "include_entities": {"false"}}

	var users []user
	err := c.Cached(ctx, cache.Key("users:lookup", joined), c.refresh, &users, func() error {
		return c.Get(ctx, c.endpoint(endpointLookup, q), &users)
	})
	if errors.Is(err, integrations.ErrNotFound) {
		// users/lookup answers 404 when none of the IDs resolve.
		return nil, nil
	}
	if err != nil {
		return nil, classify(err, "users/lookup.json for %d ids", len(ids))
	}

	profiles := make([]community.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, community.Profile{
			ID:       graph.NodeID(u.ID),
			Handle:   u.ScreenName,
			Location: u.Location,
		})
	}
	return profiles, nil
}

func (c *Client) endpoint(path string, q url.Values) string {
	return fmt.Sprintf("%s/1.1/%s?%s", c.baseURL, path, q.Encode())
}

// classify wraps a transport error with the matching error code. Context
// errors pass through unchanged so callers can tell cancellation apart.
func classify(err error, format string, args ...any) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	code := ferrors.ErrCodeProvider
	switch {
	case errors.Is(err, integrations.ErrNotFound):
		code = ferrors.ErrCodeNotFound
	case errors.Is(err, integrations.ErrUnauthorized):
		code = ferrors.ErrCodeUnauthorized
	case errors.Is(err, integrations.ErrRateLimited):
		code = ferrors.ErrCodeRateLimited
	case errors.Is(err, integrations.ErrNetwork):
		code = ferrors.ErrCodeNetwork
	}
	return ferrors.Wrap(code, err, format, args...)
}
