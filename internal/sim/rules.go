package sim

import "github.com/vovakirdan/soarscape/internal/core"

// Rules is the mode-specific strategy run by Step. One Rules value describes
// one session's constants (track, physics, difficulty); it holds no mutable
// state, all of which lives in Session.
type Rules interface {
	// Mode identifies the variant.
	Mode() GameMode

	// Track returns the world size.
	Track() TrackSize

	// Anchor returns the body's fixed horizontal span.
	Anchor() core.Span

	// BodySize returns the body's height (and width).
	BodySize() float64

	// Speed returns how far obstacles move per tick.
	Speed() float64

	// InitialBody returns the body at session start.
	InitialBody() Body

	// Jump applies a jump command and reports whether it had an effect.
	Jump(b *Body) bool

	// Integrate advances the body by one tick.
	Integrate(b *Body)

	// Populate fills the initial obstacle queue of a fresh session.
	Populate(s *Session)

	// Spawn appends new obstacles after the queue has advanced.
	Spawn(s *Session)

	// Collides reports whether the post-tick state ends the session.
	Collides(s *Session, active Obstacle, hasActive bool) bool

	// Score returns the raw points earned by the tick that produced s.
	Score(s *Session, active Obstacle, hasActive bool) int

	// DisplayScore converts a raw score to the displayed score.
	DisplayScore(raw int) int
}
