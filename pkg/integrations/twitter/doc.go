// Package twitter fetches follower graphs from the Twitter v1.1 REST API.
//
// [Client] implements the crawl provider:
//
//   - ResolveHandle: users/show.json
//   - FetchFollowerIDs: followers/ids.json, following next_cursor
//   - FetchFriendIDs: friends/ids.json, following next_cursor
//   - FetchProfiles: users/lookup.json, at most 100 IDs per call
//
// Requests authenticate with an app-only bearer token, either given directly
// or obtained from a consumer key and secret through the OAuth2 client
// credentials grant. Responses are cached per page, requests are paced to
// the configured rate limit window, and 429 responses wait for the window
// reset advertised in x-rate-limit-reset.
package twitter
