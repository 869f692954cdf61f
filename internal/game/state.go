// Package game provides the main game loop and state management.
package game

// State represents the current shell state.
type State int

const (
	// StateFloor is the between-battles view of the current floor.
	StateFloor State = iota
	// StateBattle is an active battle driven by the engine.
	StateBattle
	// StateGameOver is the defeat screen.
	StateGameOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateFloor:
		return "floor"
	case StateBattle:
		return "battle"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
