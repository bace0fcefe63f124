package graph

import (
	"slices"
	"testing"
)

func TestParseNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    NodeID
		wantErr bool
	}{
		{"small", "42", 42, false},
		{"negative", "-7", -7, false},
		{"large platform id", "1234567890123456789", 1234567890123456789, false},
		{"max int64", "9223372036854775807", 9223372036854775807, false},

		{"empty", "", 0, true},
		{"overflow", "9223372036854775808", 0, true},
		{"letters", "12a", 0, true},
		{"padded", " 12", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseNodeID(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestEdgeString(t *testing.T) {
	e := Edge{Follower: 1, Followed: 2}
	if got := e.String(); got != "1,2" {
		t.Errorf("String() = %q, want %q", got, "1,2")
	}
}

func TestNodeSetAdd(t *testing.T) {
	s := NewNodeSet()
	if !s.Add(1) {
		t.Error("Add(1) on empty set = false, want true")
	}
	if s.Add(1) {
		t.Error("second Add(1) = true, want false")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestNodeSetHasOnNil(t *testing.T) {
	var s NodeSet
	if s.Has(1) {
		t.Error("nil set should not contain anything")
	}
	if s.Clone().Len() != 0 {
		t.Error("Clone() of nil set should be empty")
	}
}

func TestNodeSetClone(t *testing.T) {
	s := NewNodeSet(1, 2)
	c := s.Clone()
	c.Add(3)
	if s.Has(3) {
		t.Error("Clone() should not share storage with the original")
	}
}

func TestNodeSetDifference(t *testing.T) {
	s := NewNodeSet(1, 2, 3, 4, 5)
	got := s.Difference(NewNodeSet(1), nil, NewNodeSet(4, 9))
	want := []NodeID{2, 3, 5}
	if !slices.Equal(got.Sorted(), want) {
		t.Errorf("Difference() = %v, want %v", got.Sorted(), want)
	}
}

func TestNodeSetSorted(t *testing.T) {
	s := NewNodeSet(30, -1, 10)
	want := []NodeID{-1, 10, 30}
	if got := s.Sorted(); !slices.Equal(got, want) {
		t.Errorf("Sorted() = %v, want %v", got, want)
	}
}

func TestFrontierNewlyDiscovered(t *testing.T) {
	f := NewFrontier()
	f.Observe(1)
	f.Observe(2)
	f.Snapshot()

	f.Observe(2)
	f.Observe(3)
	f.Observe(4)
	f.Observe(5)

	got := f.NewlyDiscovered(NewNodeSet(3, 1))
	want := []NodeID{4, 5}
	if !slices.Equal(got.Sorted(), want) {
		t.Errorf("NewlyDiscovered() = %v, want %v", got.Sorted(), want)
	}
	if f.Len() != 5 {
		t.Errorf("Len() = %d, want 5", f.Len())
	}
	if f.InitialLen() != 2 {
		t.Errorf("InitialLen() = %d, want 2", f.InitialLen())
	}
}

func TestFrontierNewlyDiscoveredNeverIncludesInitial(t *testing.T) {
	f := NewFrontier()
	for id := NodeID(0); id < 50; id++ {
		f.Observe(id)
	}
	f.Snapshot()
	for id := NodeID(25); id < 100; id++ {
		f.Observe(id)
	}

	seeds := NewNodeSet(60, 70)
	for id := range f.NewlyDiscovered(seeds) {
		if id < 50 {
			t.Errorf("NewlyDiscovered() contains initial node %d", id)
		}
		if seeds.Has(id) {
			t.Errorf("NewlyDiscovered() contains excluded node %d", id)
		}
	}
}

func TestFrontierSnapshotIsIndependent(t *testing.T) {
	f := NewFrontier()
	f.Observe(1)
	f.Snapshot()
	f.Observe(2)
	if f.InitialLen() != 1 {
		t.Errorf("InitialLen() = %d after later Observe, want 1", f.InitialLen())
	}
	if !f.Known(2) || f.Known(3) {
		t.Error("Known() reports wrong membership")
	}
}
