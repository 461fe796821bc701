// Package sim is the game simulation core shared by every mode: kinematics,
// the obstacle track, collision tests, scoring and the Start/Playing/GameOver
// state machine. It renders nothing, performs no I/O and owns no clock; each
// call to Machine.Tick advances exactly one step.
package sim

// GameMode tags the variant being played. It is fixed for a session.
type GameMode string

const (
	FlapMode   GameMode = "flap"
	RunnerMode GameMode = "runner"
)

// Modes returns all game modes.
func Modes() []GameMode {
	return []GameMode{FlapMode, RunnerMode}
}

// BestScoreKey returns the persistence key for the mode's best score.
func (m GameMode) BestScoreKey() string {
	return "bestScore_" + string(m)
}

// Valid reports whether m is a known mode.
func (m GameMode) Valid() bool {
	return m == FlapMode || m == RunnerMode
}

// State is the session state of a Machine.
type State int

const (
	StateStart State = iota
	StatePlaying
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateStart:
		return "Start"
	case StatePlaying:
		return "Playing"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// TrackSize is the size of the simulated world in layout units.
type TrackSize struct {
	Width  float64
	Height float64
}
