package sim

import "math/rand"

// Session is the complete mutable state of one play session. Step takes a
// session by value and returns the next one; a Machine stores the latest.
type Session struct {
	Body   Body
	Track  Track
	Cursor LayoutCursor
	Raw    int // raw score
	Ticks  int

	rng *rand.Rand
}

// NewSession creates a session for rules with the given layout and RNG seed
// and fills its initial obstacle queue.
func NewSession(rules Rules, layout LevelLayout, seed int64) Session {
	s := Session{
		Body:   rules.InitialBody(),
		Cursor: NewLayoutCursor(layout),
		rng:    rand.New(rand.NewSource(seed)),
	}
	rules.Populate(&s)
	return s
}

// Uniform returns a random value in [lo, hi) from the session's generator.
// It returns lo when the range is empty.
func (s *Session) Uniform(lo, hi float64) float64 {
	if hi <= lo || s.rng == nil {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}

// Input is what the outside world contributes to a tick.
type Input struct {
	Jump bool
}

// Outcome describes what a tick did.
type Outcome struct {
	Jumped   bool // a jump was applied
	Points   int  // raw points earned
	Recycled int  // obstacles dropped off the leading edge
	Died     bool // collision or bounds violation
}

// Step advances a session by exactly one tick:
// jump → integrate → advance and spawn → recycle → collide → score.
// Collision and scoring see the state the tick produced. The returned session
// shares no obstacle storage with s, so s stays valid as a snapshot; the
// random generator is shared and advances.
func Step(s Session, rules Rules, in Input) (Session, Outcome) {
	next := s
	next.Track = s.Track.clone()

	var out Outcome
	if in.Jump {
		out.Jumped = rules.Jump(&next.Body)
	}
	rules.Integrate(&next.Body)

	next.Track.Advance(rules.Speed())
	rules.Spawn(&next)
	out.Recycled = next.Track.Recycle()

	active, hasActive := ActiveObstacle(next.Track.Obstacles, rules.Anchor())
	out.Died = rules.Collides(&next, active, hasActive)
	out.Points = rules.Score(&next, active, hasActive)

	next.Raw += out.Points
	next.Ticks++
	return next, out
}
