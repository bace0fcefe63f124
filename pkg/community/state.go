package community

// State is a stage of a community crawl.
//
// A crawl moves through the states in declaration order. FilteringCandidates
// is skipped when no location filter is set, and a cancelled community
// discovery jumps straight to Done.
type State int

const (
	ResolvingSeeds State = iota
	DiscoveringCommunity
	FilteringCandidates
	DiscoveringEdges
	Done
)

var stateNames = [...]string{
	ResolvingSeeds:       "resolving-seeds",
	DiscoveringCommunity: "discovering-community",
	FilteringCandidates:  "filtering-candidates",
	DiscoveringEdges:     "discovering-edges",
	Done:                 "done",
}

// String returns the kebab-case name of the state.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
