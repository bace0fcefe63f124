package graph

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// NodeID identifies an account on the crawled network.
// Platform identifiers are 63-bit integers, so int64 covers the full range.
type NodeID int64

// String returns the decimal form used in the edge log.
func (id NodeID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseNodeID parses the decimal form of an identifier.
func ParseNodeID(s string) (NodeID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return NodeID(v), nil
}

// Edge is a directed relationship: Follower follows Followed.
type Edge struct {
	Follower NodeID `json:"follower"`
	Followed NodeID `json:"followed"`
}

// String returns the edge in its on-disk form "follower,followed".
func (e Edge) String() string {
	return fmt.Sprintf("%d,%d", e.Follower, e.Followed)
}

// NodeSet is an unordered set of node identifiers.
// The zero value is not usable for Add; use NewNodeSet.
type NodeSet map[NodeID]struct{}

// NewNodeSet returns a set holding ids.
func NewNodeSet(ids ...NodeID) NodeSet {
	s := make(NodeSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id and reports whether it was absent.
func (s NodeSet) Add(id NodeID) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Has reports whether id is in the set. Safe on a nil set.
func (s NodeSet) Has(id NodeID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of identifiers in the set.
func (s NodeSet) Len() int { return len(s) }

// Clone returns an independent copy of the set.
func (s NodeSet) Clone() NodeSet {
	if s == nil {
		return NewNodeSet()
	}
	return maps.Clone(s)
}

// Difference returns the members of s absent from every set in others.
// Nil sets in others are treated as empty.
func (s NodeSet) Difference(others ...NodeSet) NodeSet {
	out := make(NodeSet)
	for id := range s {
		excluded := false
		for _, o := range others {
			if o.Has(id) {
				excluded = true
				break
			}
		}
		if !excluded {
			out[id] = struct{}{}
		}
	}
	return out
}

// Sorted returns the members in ascending order.
func (s NodeSet) Sorted() []NodeID {
	return slices.Sorted(maps.Keys(s))
}
