package community

import (
	"context"
	"slices"
	"strings"

	"github.com/matzehuels/followgraph/pkg/graph"
)

// MaxLookupBatch is the largest number of IDs a single profile lookup may
// carry.
const MaxLookupBatch = 100

// Profile is the subset of an account's profile the crawl needs.
type Profile struct {
	ID       graph.NodeID
	Handle   string
	Location string // free text; empty when the account sets none
}

// HasLocation reports whether the profile carries a location.
func (p Profile) HasLocation() bool {
	return strings.TrimSpace(p.Location) != ""
}

// MatchesLocation reports whether the profile's location contains filter,
// ignoring case. Profiles without a location never match.
func (p Profile) MatchesLocation(filter string) bool {
	if !p.HasLocation() {
		return false
	}
	return strings.Contains(strings.ToLower(p.Location), strings.ToLower(filter))
}

// filterByLocation keeps the candidates whose profile location matches filter.
// Profiles are looked up in chunks of MaxLookupBatch. A chunk whose lookup
// fails is logged and dropped. IDs absent from the lookup response
// (suspended or deleted accounts) are dropped too.
//
// The second return value is false when ctx was cancelled before every chunk
// was looked up.
func (c *Crawler) filterByLocation(ctx context.Context, candidates []graph.NodeID, filter string) ([]graph.NodeID, bool) {
	logger := c.opts.Logger
	var kept []graph.NodeID
	chunks, failed := 0, 0

	for batch := range slices.Chunk(candidates, MaxLookupBatch) {
		if ctx.Err() != nil {
			return kept, false
		}
		chunks++
		profiles, err := c.provider.FetchProfiles(ctx, batch)
		if err != nil {
			if ctx.Err() != nil {
				return kept, false
			}
			failed++
			logger.Warn("profile lookup failed, dropping batch", "size", len(batch), "err", err)
			continue
		}

		byID := make(map[graph.NodeID]Profile, len(profiles))
		for _, p := range profiles {
			byID[p.ID] = p
		}
		for _, id := range batch {
			if p, ok := byID[id]; ok && p.MatchesLocation(filter) {
				kept = append(kept, id)
			}
		}
	}

	logger.Debug("location filter applied",
		"location", filter,
		"batches", chunks,
		"failed_batches", failed,
		"kept", len(kept),
		"candidates", len(candidates))
	return kept, true
}
