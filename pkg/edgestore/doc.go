// Package edgestore persists the crawled follower graph as an append-only,
// deduplicated edge log.
//
// # File Format
//
// The log is UTF-8 text with a mandatory header followed by one edge per line:
//
//	follower,followed
//	783214,6253282
//	6253282,783214
//
// Lines are only ever appended. An edge is written at most once; reopening
// the log restores every edge and node written by previous runs, so a crawl
// can be interrupted and resumed without duplicating work or data.
//
// # Durability
//
// [Store.AddEdge] writes the line with a single write call before returning,
// so the edge is visible to the operating system even if the process is
// killed right after. [WithSync] additionally fsyncs every append. A crash in
// the middle of an append can leave a final line without its newline. [Open]
// refuses such a file with a CORRUPT_FORMAT error naming the line and never
// rewrites it: the line may be a truncated edge, so the operator removes it
// (losing at most that one edge) before resuming.
//
// # Resumption
//
// [Open] snapshots the nodes that were on disk before the run. The crawler
// uses [Store.NewlyDiscovered] to skip nodes a previous run already explored.
package edgestore
