package graph

// State is a stage of one analysis run.
type State int

const (
	StateIdle State = iota
	StateFetchingMetadata
	StateScoring
	StateRankingAndLayout
	StateRendered
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetchingMetadata:
		return "fetching-metadata"
	case StateScoring:
		return "scoring"
	case StateRankingAndLayout:
		return "ranking-and-layout"
	case StateRendered:
		return "rendered"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == StateRendered || s == StateAborted
}
