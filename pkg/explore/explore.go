// Package explore runs exploration passes over follower graphs.
//
// A pass visits a list of nodes in order. For each node it fetches the
// follower and friend lists from a [Provider] and feeds the resulting edges to
// an [EdgeSink]:
//
//	follower f of n  ->  edge (f, n)
//	friend g of n    ->  edge (n, g)
//
// Provider failures for one node (suspended or protected accounts, transient
// API errors) are logged and the pass moves on. Cancelling the context stops
// the pass between nodes; edges already written stay written and the
// [Result] reports [Partial] instead of [Complete].
//
// With Options.Workers > 1 the fetches fan out over a worker pool while the
// calling goroutine stays the only one writing to the sink.
package explore

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/followgraph/pkg/errors"
	"github.com/matzehuels/followgraph/pkg/graph"
	"github.com/matzehuels/followgraph/pkg/observability"
)

// Pass names used in logs and hooks.
const (
	PassCommunity = "community" // unrestricted node discovery
	PassEdges     = "edges"     // edge discovery restricted to known nodes
)

// Provider supplies adjacency lists from the network.
//
// Implementations own rate limiting and retries; a returned error means the
// node cannot be explored right now.
type Provider interface {
	FetchFollowerIDs(ctx context.Context, id graph.NodeID) ([]graph.NodeID, error)
	FetchFriendIDs(ctx context.Context, id graph.NodeID) ([]graph.NodeID, error)
}

// EdgeSink receives discovered edges. *edgestore.Store implements it.
type EdgeSink interface {
	AddEdge(follower, followed graph.NodeID, restrictToKnown bool) (bool, error)
}

// Outcome tells whether a pass visited every node.
type Outcome int

const (
	// Complete means every node was either explored or skipped after a
	// provider error.
	Complete Outcome = iota
	// Partial means the pass was cancelled before reaching every node.
	Partial
)

// String returns "complete" or "partial".
func (o Outcome) String() string {
	if o == Partial {
		return "partial"
	}
	return "complete"
}

// Failure records a node skipped because the provider failed.
type Failure struct {
	Node graph.NodeID
	Err  error
}

// Result summarizes one pass.
type Result struct {
	Pass       string
	Outcome    Outcome
	Total      int           // Nodes requested
	Processed  int           // Nodes whose edges were applied
	Failed     []Failure     // Nodes skipped after provider errors
	EdgesAdded int           // Edges the sink accepted
	Duration   time.Duration // Wall time of the pass
}

// Remaining returns the number of nodes the pass did not reach.
func (r *Result) Remaining() int {
	return r.Total - r.Processed - len(r.Failed)
}

// Options configures an Explorer.
type Options struct {
	Workers int         // Concurrent fetches (default: 1, sequential)
	Logger  *log.Logger // Progress and failure logging (default: log.Default())
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return opts
}

// Explorer drives exploration passes against a Provider.
type Explorer struct {
	provider Provider
	opts     Options
}

// New creates an Explorer.
func New(p Provider, opts Options) *Explorer {
	return &Explorer{provider: p, opts: opts.WithDefaults()}
}

// fetched holds the adjacency lists of one node, or the error that
// prevented fetching them.
type fetched struct {
	node      graph.NodeID
	followers []graph.NodeID
	friends   []graph.NodeID
	err       error
}

// Explore runs one pass over ids, writing edges to sink.
//
// The returned error is non-nil only when the sink fails; provider errors and
// cancellation are reported through the Result. A node's edges are written
// only after both of its lists were fetched, so a cancelled pass never leaves
// a node half-applied.
func (e *Explorer) Explore(ctx context.Context, ids []graph.NodeID, sink EdgeSink, restrictToKnown bool) (*Result, error) {
	pass := PassCommunity
	if restrictToKnown {
		pass = PassEdges
	}
	res := &Result{Pass: pass, Total: len(ids)}
	start := time.Now()
	observability.Crawl().OnPassStart(ctx, pass, len(ids))

	var err error
	if e.opts.Workers > 1 && len(ids) > 1 {
		err = e.exploreParallel(ctx, ids, sink, restrictToKnown, res)
	} else {
		err = e.exploreSequential(ctx, ids, sink, restrictToKnown, res)
	}

	res.Duration = time.Since(start)
	if res.Remaining() > 0 {
		res.Outcome = Partial
	}
	if err != nil {
		return res, err
	}

	observability.Crawl().OnPassComplete(ctx, pass, res.Outcome.String(), res.Processed, res.Duration)
	logger := e.opts.Logger
	if res.Outcome == Partial {
		logger.Warn("pass interrupted",
			"pass", pass,
			"processed", res.Processed,
			"failed", len(res.Failed),
			"remaining", res.Remaining(),
			"edges", res.EdgesAdded,
			"duration", res.Duration.Round(time.Millisecond))
	} else {
		logger.Info("pass complete",
			"pass", pass,
			"processed", res.Processed,
			"failed", len(res.Failed),
			"edges", res.EdgesAdded,
			"duration", res.Duration.Round(time.Millisecond))
	}
	return res, nil
}

func (e *Explorer) exploreSequential(ctx context.Context, ids []graph.NodeID, sink EdgeSink, restrict bool, res *Result) error {
	for i, id := range ids {
		if ctx.Err() != nil {
			return nil
		}
		e.logProgress(res.Pass, i+1, len(ids), id)
		f := e.fetch(ctx, id)
		if err := e.apply(ctx, f, sink, restrict, res); err != nil {
			return err
		}
	}
	return nil
}

// exploreParallel fans fetches out over Workers goroutines. Results flow back
// over a channel and are applied here, keeping a single writer on sink. Once
// ctx is done no new fetch starts and no further result is applied.
func (e *Explorer) exploreParallel(ctx context.Context, ids []graph.NodeID, sink EdgeSink, restrict bool, res *Result) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	results := make(chan fetched, e.opts.Workers)

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		defer close(jobs)
		for i := range ids {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})
	for range e.opts.Workers {
		g.Go(func() error {
			for i := range jobs {
				if gctx.Err() != nil {
					continue
				}
				results <- e.fetch(gctx, ids[i])
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	var sinkErr error
	done := 0
	for f := range results {
		if sinkErr != nil || ctx.Err() != nil {
			continue // drain
		}
		done++
		e.logProgress(res.Pass, done, len(ids), f.node)
		if err := e.apply(ctx, f, sink, restrict, res); err != nil {
			sinkErr = err
			cancel()
		}
	}
	return sinkErr
}

func (e *Explorer) fetch(ctx context.Context, id graph.NodeID) fetched {
	f := fetched{node: id}
	f.followers, f.err = e.provider.FetchFollowerIDs(ctx, id)
	if f.err != nil {
		f.err = fmt.Errorf("followers: %w", f.err)
		return f
	}
	f.friends, f.err = e.provider.FetchFriendIDs(ctx, id)
	if f.err != nil {
		f.err = fmt.Errorf("friends: %w", f.err)
	}
	return f
}

// apply writes the edges of one fetched node. Provider errors are recorded
// as failures unless the context was cancelled, in which case the node simply
// counts as not reached.
func (e *Explorer) apply(ctx context.Context, f fetched, sink EdgeSink, restrict bool, res *Result) error {
	if f.err != nil {
		if ctx.Err() != nil {
			return nil
		}
		res.Failed = append(res.Failed, Failure{Node: f.node, Err: f.err})
		e.opts.Logger.Warn("skipping node", "pass", res.Pass, "node", f.node, "err", f.err)
		observability.Crawl().OnNodeExplored(ctx, res.Pass, int64(f.node), 0, f.err)
		return nil
	}

	added := 0
	for _, follower := range f.followers {
		ok, err := sink.AddEdge(follower, f.node, restrict)
		if err != nil {
			return errors.Wrap(errors.ErrCodeStorage, err, "record follower %d of %d", follower, f.node)
		}
		if ok {
			added++
		}
	}
	for _, friend := range f.friends {
		ok, err := sink.AddEdge(f.node, friend, restrict)
		if err != nil {
			return errors.Wrap(errors.ErrCodeStorage, err, "record friend %d of %d", friend, f.node)
		}
		if ok {
			added++
		}
	}

	res.Processed++
	res.EdgesAdded += added
	e.opts.Logger.Debug("explored node",
		"pass", res.Pass,
		"node", f.node,
		"followers", len(f.followers),
		"friends", len(f.friends),
		"added", added)
	observability.Crawl().OnNodeExplored(ctx, res.Pass, int64(f.node), added, nil)
	return nil
}

func (e *Explorer) logProgress(pass string, i, total int, id graph.NodeID) {
	e.opts.Logger.Info("exploring", "pass", pass, "progress", fmt.Sprintf("%5d/%5d", i, total), "node", id)
}
