package twitter

// user is the subset of the v1.1 user object the crawler reads.
type user struct {
	ID         int64  `json:"id"`
	ScreenName string `json:"screen_name"`
	Location   string `json:"location"`
	Protected  bool   `json:"protected"`
}

// idPage is one page of followers/ids.json or friends/ids.json.
type idPage struct {
	IDs        []int64 `json:"ids"`
	NextCursor int64   `json:"next_cursor"`
}
