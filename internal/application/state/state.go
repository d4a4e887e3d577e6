package state

// GameState is the demo shell's coarse state.
type GameState int

const (
	StateTitle GameState = iota
	StateRiding
	StatePaused
	StateResults
)

// String returns the state name.
func (s GameState) String() string {
	switch s {
	case StateTitle:
		return "Title"
	case StateRiding:
		return "Riding"
	case StatePaused:
		return "Paused"
	case StateResults:
		return "Results"
	default:
		return "Unknown"
	}
}
