// Package community discovers the follower graph around a set of seed
// accounts.
//
// A crawl runs in two exploration phases over one edge log:
//
//  1. Community discovery explores the seeds without restriction. Every
//     follower and friend of a seed becomes a node.
//  2. Edge discovery explores the newly found nodes (optionally narrowed by a
//     location filter), recording only edges between nodes already known.
//
// Candidates for phase 2 exclude the seeds and every node that was already
// in the edge log before the run, so repeated runs against the same file
// grow the graph instead of re-crawling it. Candidates are shuffled so that
// an interrupted phase 2 covers a random sample of the community.
//
// Cancelling phase 1 or the location filter ends the run as Partial without
// starting phase 2. The nodes phase 1 already wrote count as known on the
// next run against the same file, so their edges are never explored there;
// rerun against a fresh output file to get edge discovery for the whole
// community.
package community

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/followgraph/pkg/edgestore"
	"github.com/matzehuels/followgraph/pkg/errors"
	"github.com/matzehuels/followgraph/pkg/explore"
	"github.com/matzehuels/followgraph/pkg/graph"
)

// Provider is the network capability a crawl needs.
type Provider interface {
	explore.Provider

	// ResolveHandle maps an account handle to its numeric ID.
	ResolveHandle(ctx context.Context, handle string) (graph.NodeID, error)

	// FetchProfiles looks up at most MaxLookupBatch profiles. IDs that do not
	// resolve to an account are omitted from the result.
	FetchProfiles(ctx context.Context, ids []graph.NodeID) ([]Profile, error)
}

// Request describes one crawl.
type Request struct {
	SeedHandles    []string // Accounts to start from
	OutputPath     string   // Edge log, created or extended
	LocationFilter string   // Optional case-insensitive location substring
}

// Options configures a Crawler.
type Options struct {
	Explore explore.Options // Worker count and logger for both phases
	Sync    bool            // fsync the edge log after every append

	// Rand shuffles the phase 2 candidates (default: randomly seeded).
	Rand *rand.Rand

	// OnTransition, if set, is called on every state change.
	OnTransition func(from, to State)

	Logger *log.Logger // default: log.Default()
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Explore.Logger == nil {
		opts.Explore.Logger = opts.Logger
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return opts
}

// Report summarizes a crawl.
type Report struct {
	RunID      string
	Seeds      []graph.NodeID
	Candidates int // Nodes discovered in phase 1 that were new to the log
	Filtered   int // Candidates left after the location filter
	Community  int // Known nodes at the end of the run
	Edges      int // Known edges at the end of the run
	Appended   int // Edges written by this run

	Outcome    explore.Outcome
	FinalState State

	CommunityPass *explore.Result
	EdgesPass     *explore.Result // nil when phase 2 did not run

	ResolveDuration time.Duration
	Duration        time.Duration
}

// Crawler runs community crawls against a Provider.
type Crawler struct {
	provider Provider
	opts     Options
	explorer *explore.Explorer
	state    State
}

// New creates a Crawler.
func New(p Provider, opts Options) *Crawler {
	opts = opts.WithDefaults()
	return &Crawler{
		provider: p,
		opts:     opts,
		explorer: explore.New(p, opts.Explore),
		state:    ResolvingSeeds,
	}
}

// State returns the current state of the crawler.
func (c *Crawler) State() State { return c.state }

func (c *Crawler) transition(to State) {
	from := c.state
	c.state = to
	c.opts.Logger.Debug("crawl state", "from", from, "to", to)
	if c.opts.OnTransition != nil {
		c.opts.OnTransition(from, to)
	}
}

// Run executes the crawl described by req.
//
// Fatal conditions return an error: an empty or invalid seed list, a handle
// that does not resolve, a corrupt edge log, or a failed write. Cancelling ctx
// is not an error; the phase in progress stops, the edges written so far stay
// in the log and the report's Outcome is Partial.
func (c *Crawler) Run(ctx context.Context, req Request) (*Report, error) {
	start := time.Now()
	c.state = ResolvingSeeds
	report := &Report{RunID: uuid.NewString(), FinalState: ResolvingSeeds}
	logger := c.opts.Logger.With("run", report.RunID[:8])

	seeds, err := c.resolveSeeds(ctx, req.SeedHandles)
	report.ResolveDuration = time.Since(start)
	if err != nil {
		return report, err
	}
	report.Seeds = seeds
	logger.Info("resolved seeds", "count", len(seeds), "duration", report.ResolveDuration.Round(time.Millisecond))

	store, err := edgestore.Open(req.OutputPath,
		edgestore.WithSync(c.opts.Sync),
		edgestore.WithLogger(c.opts.Logger))
	if err != nil {
		return report, err
	}
	defer store.Close()

	finish := func() (*Report, error) {
		c.transition(Done)
		st := store.Stats()
		report.FinalState = Done
		report.Community = st.Nodes
		report.Edges = st.Edges
		report.Appended = st.Appended
		report.Duration = time.Since(start)
		if err := store.Close(); err != nil {
			return report, err
		}
		return report, nil
	}

	// Phase 1: community discovery.
	c.transition(DiscoveringCommunity)
	report.CommunityPass, err = c.explorer.Explore(ctx, seeds, store, false)
	if err != nil {
		return report, err
	}
	if report.CommunityPass.Outcome == explore.Partial {
		logger.Warn("community discovery interrupted, skipping edge discovery",
			"nodes", store.NodeCount(),
			"edges", store.EdgeCount())
		report.Outcome = explore.Partial
		return finish()
	}

	candidates := store.NewlyDiscovered(graph.NewNodeSet(seeds...)).Sorted()
	report.Candidates = len(candidates)
	logger.Info("community discovered",
		"nodes", store.NodeCount(),
		"already_known", store.InitialNodeCount(),
		"candidates", len(candidates),
		"duration", report.CommunityPass.Duration.Round(time.Millisecond))

	if req.LocationFilter != "" {
		c.transition(FilteringCandidates)
		var complete bool
		candidates, complete = c.filterByLocation(ctx, candidates, req.LocationFilter)
		if !complete {
			logger.Warn("location filtering interrupted, skipping edge discovery", "kept", len(candidates))
			report.Filtered = len(candidates)
			report.Outcome = explore.Partial
			return finish()
		}
		logger.Info("filtered candidates by location", "location", req.LocationFilter, "remaining", len(candidates))
	}
	report.Filtered = len(candidates)

	c.opts.Rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	// Phase 2: edges within the community.
	c.transition(DiscoveringEdges)
	report.EdgesPass, err = c.explorer.Explore(ctx, candidates, store, true)
	if err != nil {
		return report, err
	}
	report.Outcome = report.EdgesPass.Outcome
	if report.Outcome == explore.Partial {
		logger.Warn("edge discovery interrupted", "edges", store.EdgeCount(), "remaining", report.EdgesPass.Remaining())
	}
	return finish()
}

// resolveSeeds maps handles to IDs in order, dropping repeats. It fails on
// the first handle that is malformed or does not resolve.
func (c *Crawler) resolveSeeds(ctx context.Context, handles []string) ([]graph.NodeID, error) {
	if len(handles) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no seed accounts given")
	}

	seen := graph.NewNodeSet()
	seeds := make([]graph.NodeID, 0, len(handles))
	for _, raw := range handles {
		handle := errors.NormalizeHandle(raw)
		if err := errors.ValidateHandle(handle); err != nil {
			return nil, err
		}
		id, err := c.provider.ResolveHandle(ctx, handle)
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.Wrap(errors.ErrCodeUserCancelled, ctx.Err(), "resolving @%s", handle)
			}
			return nil, errors.Wrap(errors.ErrCodeUnresolvedHandle, err, "resolve @%s", handle)
		}
		c.opts.Logger.Debug("resolved seed", "handle", handle, "id", id)
		if seen.Add(id) {
			seeds = append(seeds, id)
		}
	}
	return seeds, nil
}
