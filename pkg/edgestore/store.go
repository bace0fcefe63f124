package edgestore

import (
	"io"
	"os"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/followgraph/pkg/errors"
	"github.com/matzehuels/followgraph/pkg/graph"
)

// Stats summarizes the state of a Store.
type Stats struct {
	Nodes            int // Known nodes, loaded and discovered
	Edges            int // Known edges, loaded and discovered
	InitialNodes     int // Nodes on disk when the store was opened
	InitialEdges     int // Edges on disk when the store was opened
	Appended         int // Edges written by this process
	DuplicatesOnLoad int // Repeated lines found while loading
}

// Option configures a Store.
type Option func(*Store)

// WithSync makes every append fsync the log before AddEdge returns.
func WithSync(sync bool) Option {
	return func(s *Store) { s.sync = sync }
}

// WithLogger sets the logger used for load and repair messages.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Store is an append-only, deduplicated edge log backed by a file.
//
// A Store is not safe for concurrent use. Callers that fetch in parallel must
// funnel AddEdge calls through a single goroutine.
type Store struct {
	path     string
	file     *os.File
	frontier *graph.Frontier
	edges    map[graph.Edge]struct{}
	logger   *log.Logger
	sync     bool

	failed error // set after a failed append; the tail may be torn
	stats  Stats
}

// Open loads the edge log at path, or creates it with its header when the
// file is missing or empty. It returns a CORRUPT_FORMAT error, leaving the
// file untouched, when the header or any line is malformed or the last line
// lacks its newline.
func Open(path string, opts ...Option) (*Store, error) {
	if err := errors.ValidateOutputPath(path); err != nil {
		return nil, err
	}

	s := &Store{
		path:     path,
		frontier: graph.NewFrontier(),
		edges:    make(map[graph.Edge]struct{}),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "open edge log %s", path)
	}
	s.file = f

	if err := s.load(); err != nil {
		f.Close()
		return nil, err
	}

	s.frontier.Snapshot()
	s.stats.InitialNodes = s.frontier.InitialLen()
	s.stats.InitialEdges = len(s.edges)
	return s, nil
}

func (s *Store) load() error {
	res, err := scan(s.file, s.record)
	if err != nil {
		if errors.Is(err, errors.ErrCodeCorruptFormat) {
			return errors.New(errors.ErrCodeCorruptFormat, "%s: %s", s.path, errors.UserMessage(err))
		}
		return err
	}

	if res.empty {
		if _, err := s.file.WriteString(Header + "\n"); err != nil {
			return errors.Wrap(errors.ErrCodeStorage, err, "write header to %s", s.path)
		}
		if err := s.flush(); err != nil {
			return err
		}
		s.logger.Debug("created edge log", "path", s.path)
		return nil
	}

	s.stats.DuplicatesOnLoad = res.lines - len(s.edges)
	s.logger.Info("loaded edge log",
		"path", s.path,
		"nodes", s.frontier.Len(),
		"edges", len(s.edges))
	if s.stats.DuplicatesOnLoad > 0 {
		s.logger.Warn("edge log contains repeated lines", "path", s.path, "count", s.stats.DuplicatesOnLoad)
	}
	return nil
}

// record adds e to the in-memory state without touching the file.
func (s *Store) record(e graph.Edge) {
	s.frontier.Observe(e.Follower)
	s.frontier.Observe(e.Followed)
	s.edges[e] = struct{}{}
}

// AddEdge records the edge follower→followed and appends it to the log.
//
// It is a no-op, returning false, when the edge is already known, or when
// restrictToKnown is set and either endpoint is not yet a known node. The
// latter keeps the second crawl phase inside the discovered community.
//
// When AddEdge returns true the line has been handed to the operating system
// (and fsynced with WithSync). A write failure leaves the in-memory state
// untouched and poisons the store: later calls fail with the same error.
func (s *Store) AddEdge(follower, followed graph.NodeID, restrictToKnown bool) (bool, error) {
	if s.file == nil {
		return false, errors.New(errors.ErrCodeStorage, "edge log %s is closed", s.path)
	}
	if s.failed != nil {
		return false, s.failed
	}

	e := graph.Edge{Follower: follower, Followed: followed}
	if _, ok := s.edges[e]; ok {
		return false, nil
	}
	if restrictToKnown && (!s.frontier.Known(follower) || !s.frontier.Known(followed)) {
		return false, nil
	}

	if _, err := io.WriteString(s.file, FormatEdge(e)); err != nil {
		s.failed = errors.Wrap(errors.ErrCodeStorage, err, "append edge %s to %s", e, s.path)
		return false, s.failed
	}
	if err := s.flush(); err != nil {
		s.failed = err
		return false, err
	}

	s.record(e)
	s.stats.Appended++
	return true, nil
}

func (s *Store) flush() error {
	if !s.sync {
		return nil
	}
	if err := s.file.Sync(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "sync %s", s.path)
	}
	return nil
}

// NewlyDiscovered returns the nodes known now that were neither on disk when
// the store was opened nor in excluding.
func (s *Store) NewlyDiscovered(excluding graph.NodeSet) graph.NodeSet {
	return s.frontier.NewlyDiscovered(excluding)
}

// Has reports whether the edge is known.
func (s *Store) Has(e graph.Edge) bool {
	_, ok := s.edges[e]
	return ok
}

// Known reports whether id is an endpoint of a known edge.
func (s *Store) Known(id graph.NodeID) bool { return s.frontier.Known(id) }

// NodeCount returns the number of known nodes.
func (s *Store) NodeCount() int { return s.frontier.Len() }

// EdgeCount returns the number of known edges.
func (s *Store) EdgeCount() int { return len(s.edges) }

// InitialNodeCount returns the number of nodes loaded from disk.
func (s *Store) InitialNodeCount() int { return s.frontier.InitialLen() }

// Edges returns all known edges ordered by follower, then followed.
func (s *Store) Edges() []graph.Edge {
	out := make([]graph.Edge, 0, len(s.edges))
	for e := range s.edges {
		out = append(out, e)
	}
	slices.SortFunc(out, compareEdges)
	return out
}

// Stats returns a summary of the store.
func (s *Store) Stats() Stats {
	st := s.stats
	st.Nodes = s.frontier.Len()
	st.Edges = len(s.edges)
	return st
}

// Path returns the path of the backing file.
func (s *Store) Path() string { return s.path }

// Close releases the backing file. It is safe to call more than once.
func (s *Store) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "close %s", s.path)
	}
	return nil
}

func compareEdges(a, b graph.Edge) int {
	switch {
	case a.Follower < b.Follower:
		return -1
	case a.Follower > b.Follower:
		return 1
	case a.Followed < b.Followed:
		return -1
	case a.Followed > b.Followed:
		return 1
	}
	return 0
}
