// Package game runs the exploration loop: it moves the party through the
// maze, rebuilds the first-person view and draws it.
package game

// State represents what the game is currently showing.
type State int

const (
	// StateExplore is the first-person view.
	StateExplore State = iota
	// StateMap is the overhead map of the current floor.
	StateMap
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateMap:
		return "map"
	default:
		return "unknown"
	}
}
