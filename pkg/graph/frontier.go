package graph

// Frontier tracks every node seen as an endpoint of a persisted edge, along
// with the set that was already known when the crawl state was loaded.
//
// A Frontier is not safe for concurrent use; the crawler has a single writer.
type Frontier struct {
	known   NodeSet
	initial NodeSet
}

// NewFrontier returns an empty frontier with an empty initial snapshot.
func NewFrontier() *Frontier {
	return &Frontier{known: NewNodeSet(), initial: NewNodeSet()}
}

// Observe marks id as known and reports whether it was new.
func (f *Frontier) Observe(id NodeID) bool {
	return f.known.Add(id)
}

// Known reports whether id has been observed.
func (f *Frontier) Known(id NodeID) bool {
	return f.known.Has(id)
}

// Snapshot records the current known set as the initial set.
// It is called once after persisted state has been loaded.
func (f *Frontier) Snapshot() {
	f.initial = f.known.Clone()
}

// NewlyDiscovered returns known − excluding − initial: nodes found after the
// snapshot that are not in excluding.
func (f *Frontier) NewlyDiscovered(excluding NodeSet) NodeSet {
	return f.known.Difference(excluding, f.initial)
}

// Len returns the number of known nodes.
func (f *Frontier) Len() int { return f.known.Len() }

// InitialLen returns the size of the snapshot.
func (f *Frontier) InitialLen() int { return f.initial.Len() }
