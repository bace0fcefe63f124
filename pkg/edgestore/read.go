package edgestore

import (
	"os"

	"github.com/matzehuels/followgraph/pkg/errors"
	"github.com/matzehuels/followgraph/pkg/graph"
)

// Snapshot is a read-only view of an edge log.
type Snapshot struct {
	Path       string
	Nodes      graph.NodeSet
	Edges      []graph.Edge // Distinct edges in file order
	Duplicates int          // Repeated lines
}

// Read parses the edge log at path without modifying it. The format rules
// are those of Open, but a missing file is a NOT_FOUND error instead of
// being created.
func Read(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "edge log %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "open edge log %s", path)
	}
	defer f.Close()

	snap := &Snapshot{Path: path, Nodes: graph.NewNodeSet()}
	seen := make(map[graph.Edge]struct{})
	_, err = scan(f, func(e graph.Edge) {
		if _, ok := seen[e]; ok {
			snap.Duplicates++
			return
		}
		seen[e] = struct{}{}
		snap.Nodes.Add(e.Follower)
		snap.Nodes.Add(e.Followed)
		snap.Edges = append(snap.Edges, e)
	})
	if err != nil {
		if errors.Is(err, errors.ErrCodeCorruptFormat) {
			return nil, errors.New(errors.ErrCodeCorruptFormat, "%s: %s", path, errors.UserMessage(err))
		}
		return nil, err
	}
	return snap, nil
}
