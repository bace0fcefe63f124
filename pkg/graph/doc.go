// Package graph provides the identifier, edge and node-set types shared by
// the followgraph crawler.
//
// # Core Types
//
//   - [NodeID]: an account identifier on the crawled network
//   - [Edge]: a directed "follower follows followed" relationship
//   - [NodeSet]: an unordered set of identifiers with set algebra helpers
//   - [Frontier]: the evolving set of known nodes plus the snapshot taken when
//     a persisted crawl was loaded
//
// # Frontier
//
// The frontier answers the one question the two-phase crawl needs between its
// phases: which nodes did this run discover that were neither seeds nor
// already present on disk before the run started?
//
//	f := graph.NewFrontier()
//	f.Observe(1)
//	f.Snapshot()          // 1 was loaded from disk
//	f.Observe(2)
//	f.Observe(3)
//	f.NewlyDiscovered(graph.NewNodeSet(3)) // {2}
package graph
