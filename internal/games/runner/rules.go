// Package runner implements the runner mode: a ground-anchored body that
// jumps over ground obstacles. Score is time-based.
package runner

import (
	"fmt"

	"github.com/vovakirdan/soarscape/internal/config"
	"github.com/vovakirdan/soarscape/internal/core"
	"github.com/vovakirdan/soarscape/internal/sim"
)

// Rules are the runner-mode rules for one session. Difficulty does not
// change runner physics.
type Rules struct {
	cfg config.RunnerConfig
}

// NewRules creates runner rules.
func NewRules(cfg config.RunnerConfig) (*Rules, error) {
	o := cfg.Obstacles
	switch {
	case cfg.Track.Width <= 0 || cfg.Track.Height <= 0:
		return nil, fmt.Errorf("runner: invalid track size %vx%v", cfg.Track.Width, cfg.Track.Height)
	case cfg.Physics.Speed <= 0:
		return nil, fmt.Errorf("runner: speed must be positive, got %v", cfg.Physics.Speed)
	case cfg.Player.Size <= 0 || cfg.Player.Size >= cfg.Track.Height:
		return nil, fmt.Errorf("runner: invalid player size %v", cfg.Player.Size)
	case o.MinWidth <= 0 || o.MaxWidth < o.MinWidth:
		return nil, fmt.Errorf("runner: invalid obstacle width range [%v, %v]", o.MinWidth, o.MaxWidth)
	case o.MinHeight <= 0 || o.MaxHeight < o.MinHeight || o.MaxHeight >= cfg.Track.Height:
		return nil, fmt.Errorf("runner: invalid obstacle height range [%v, %v]", o.MinHeight, o.MaxHeight)
	}
	return &Rules{cfg: cfg}, nil
}

func (r *Rules) Mode() sim.GameMode { return sim.RunnerMode }

func (r *Rules) Track() sim.TrackSize {
	return sim.TrackSize{Width: r.cfg.Track.Width, Height: r.cfg.Track.Height}
}

func (r *Rules) Anchor() core.Span {
	return core.NewSpan(r.cfg.Player.X, r.cfg.Player.Size)
}

func (r *Rules) BodySize() float64 { return r.cfg.Player.Size }

func (r *Rules) Speed() float64 { return r.cfg.Physics.Speed }

// ground is the body position when standing on the ground.
func (r *Rules) ground() float64 {
	return r.cfg.Track.Height - r.cfg.Player.Size
}

// Grounded reports whether the body stands on the ground.
func (r *Rules) Grounded(b sim.Body) bool {
	return b.Position >= r.ground()
}

// InitialBody places the body on the ground at rest.
func (r *Rules) InitialBody() sim.Body {
	return sim.Body{Position: r.ground()}
}

// Jump is only honoured while grounded.
func (r *Rules) Jump(b *sim.Body) bool {
	if !r.Grounded(*b) {
		return false
	}
	b.Jump(r.cfg.Physics.JumpImpulse)
	return true
}

// Integrate applies gravity and lands the body on the ground.
func (r *Rules) Integrate(b *sim.Body) {
	b.Integrate(r.cfg.Physics.Gravity)
	if b.Position >= r.ground() {
		b.Position = r.ground()
		b.Velocity = 0
	}
}

// Populate places the initial queue, starting at the right edge of the track.
func (r *Rules) Populate(s *sim.Session) {
	for i := 0; i < r.cfg.Obstacles.InitialCount; i++ {
		x := r.cfg.Track.Width
		if last, ok := s.Track.Trailing(); ok {
			x = last.X + s.Track.SpawnDistance
		}
		r.appendAt(s, x)
	}
}

// Spawn appends an obstacle at the right edge once the trailing obstacle has
// travelled the current spawn distance into the track.
func (r *Rules) Spawn(s *sim.Session) {
	if last, ok := s.Track.Trailing(); ok && last.X >= r.cfg.Track.Width-s.Track.SpawnDistance {
		return
	}
	r.appendAt(s, r.cfg.Track.Width)
}

// appendAt adds an obstacle with random dimensions and draws the distance to the next spawn.
func (r *Rules) appendAt(s *sim.Session, x float64) {
	o := r.cfg.Obstacles
	s.Track.Append(sim.Obstacle{
		X:      x,
		Width:  s.Uniform(o.MinWidth, o.MaxWidth),
		Height: s.Uniform(o.MinHeight, o.MaxHeight),
	})
	s.Track.SpawnDistance = o.MinSpacing + s.Uniform(0, o.SpacingJitter)
}

// Collides reports whether the body has not cleared the active obstacle.
func (r *Rules) Collides(s *sim.Session, active sim.Obstacle, hasActive bool) bool {
	if !hasActive {
		return false
	}
	return sim.HitsGround(s.Body.Position, r.cfg.Player.Size, r.cfg.Track.Height, active)
}

// Score awards one raw point per tick survived.
func (r *Rules) Score(*sim.Session, sim.Obstacle, bool) int {
	return 1
}

// DisplayScore shows a tenth of the raw score.
func (r *Rules) DisplayScore(raw int) int {
	return sim.TimeScoreDisplay(raw)
}
