// Package pkg provides the core libraries for followgraph.
//
// # Overview
//
// Followgraph discovers the community around a few seed accounts of a social
// network and records the follow relationships inside it as an append-only
// CSV edge log. The pkg directory is organized into these areas:
//
//  1. [graph] - Node identifiers, edges and node sets
//  2. [edgestore] - The deduplicated, append-only edge log on disk
//  3. [explore] - Exploration passes that turn adjacency lists into edges
//  4. [community] - The two-phase community crawl state machine
//  5. [integrations] - HTTP clients for social network APIs (Twitter)
//  6. [cache] - Response caches (file, Redis, null)
//  7. Support: [errors], [httputil], [observability], [buildinfo]
//
// # Architecture
//
// The data flow of a crawl:
//
//	seed handles
//	     ↓
//	[integrations/twitter] (resolve handles, fetch follower and friend IDs)
//	     ↓
//	[community] phase 1: explore seeds, discover the community
//	     ↓
//	[community] optional location filter over profiles
//	     ↓
//	[community] phase 2: explore the community, keep edges between known nodes
//	     ↓
//	[edgestore] community.csv
//
// # Quick Start
//
//	client, err := twitter.NewClient(twitter.Config{BearerToken: token}, cache.NewNullCache())
//	if err != nil {
//	    return err
//	}
//	report, err := community.New(client, community.Options{}).Run(ctx, community.Request{
//	    SeedHandles: []string{"jack"},
//	    OutputPath:  "community.csv",
//	})
//
// [graph]: github.com/matzehuels/followgraph/pkg/graph
// [edgestore]: github.com/matzehuels/followgraph/pkg/edgestore
// [explore]: github.com/matzehuels/followgraph/pkg/explore
// [community]: github.com/matzehuels/followgraph/pkg/community
// [integrations]: github.com/matzehuels/followgraph/pkg/integrations
// [integrations/twitter]: github.com/matzehuels/followgraph/pkg/integrations/twitter
// [cache]: github.com/matzehuels/followgraph/pkg/cache
// [errors]: github.com/matzehuels/followgraph/pkg/errors
// [httputil]: github.com/matzehuels/followgraph/pkg/httputil
// [observability]: github.com/matzehuels/followgraph/pkg/observability
// [buildinfo]: github.com/matzehuels/followgraph/pkg/buildinfo
package pkg
