package graph_test

import (
	"fmt"

	"github.com/matzehuels/followgraph/pkg/graph"
)

func ExampleFrontier_NewlyDiscovered() {
	f := graph.NewFrontier()

	// Nodes loaded from a previous run
	f.Observe(1)
	f.Observe(2)
	f.Snapshot()

	// Nodes found by this run, including the seed 10
	f.Observe(10)
	f.Observe(11)
	f.Observe(12)

	fmt.Println(f.NewlyDiscovered(graph.NewNodeSet(10)).Sorted())
	// Output:
	// [11 12]
}

func ExampleEdge_String() {
	e := graph.Edge{Follower: 783214, Followed: 6253282}
	fmt.Println(e)
	// Output:
	// 783214,6253282
}
