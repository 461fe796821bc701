// Package flap implements the flap mode: a body that falls continuously and
// is pushed up by discrete jumps, threading the gaps between paired top and
// bottom barriers.
package flap

import (
	"fmt"

	"github.com/vovakirdan/soarscape/internal/config"
	"github.com/vovakirdan/soarscape/internal/core"
	"github.com/vovakirdan/soarscape/internal/sim"
)

// Rules are the flap-mode rules for one session.
type Rules struct {
	cfg config.FlapConfig
	gap float64 // constant for the session
}

// NewRules creates flap rules for a difficulty.
func NewRules(cfg config.FlapConfig, difficulty config.Difficulty) (*Rules, error) {
	gap := cfg.Obstacles.BaseGap - difficulty.GapDelta()

	switch {
	case cfg.Track.Width <= 0 || cfg.Track.Height <= 0:
		return nil, fmt.Errorf("flap: invalid track size %vx%v", cfg.Track.Width, cfg.Track.Height)
	case cfg.Physics.Speed <= 0:
		return nil, fmt.Errorf("flap: speed must be positive, got %v", cfg.Physics.Speed)
	case cfg.Obstacles.Width <= 0:
		return nil, fmt.Errorf("flap: obstacle width must be positive, got %v", cfg.Obstacles.Width)
	case gap <= 0 || gap > cfg.Track.Height:
		return nil, fmt.Errorf("flap: gap %v does not fit track height %v", gap, cfg.Track.Height)
	case cfg.Player.Size <= 0 || cfg.Player.Size >= cfg.Track.Height:
		return nil, fmt.Errorf("flap: invalid player size %v", cfg.Player.Size)
	}

	return &Rules{cfg: cfg, gap: gap}, nil
}

// Gap returns the barrier gap used for every obstacle of the session.
func (r *Rules) Gap() float64 {
	return r.gap
}

func (r *Rules) Mode() sim.GameMode { return sim.FlapMode }

func (r *Rules) Track() sim.TrackSize {
	return sim.TrackSize{Width: r.cfg.Track.Width, Height: r.cfg.Track.Height}
}

func (r *Rules) Anchor() core.Span {
	return core.NewSpan(r.cfg.Player.X, r.cfg.Player.Size)
}

func (r *Rules) BodySize() float64 { return r.cfg.Player.Size }

func (r *Rules) Speed() float64 { return r.cfg.Physics.Speed }

// InitialBody centers the body vertically at rest.
func (r *Rules) InitialBody() sim.Body {
	return sim.Body{Position: r.cfg.Track.Height / 2}
}

// Jump is always honoured; it replaces the current velocity.
func (r *Rules) Jump(b *sim.Body) bool {
	b.Jump(r.cfg.Physics.JumpImpulse)
	return true
}

func (r *Rules) Integrate(b *sim.Body) {
	b.Integrate(r.cfg.Physics.Gravity)
}

// Populate places the first obstacle at the right edge of the track and the
// rest of the initial queue behind it.
func (r *Rules) Populate(s *sim.Session) {
	for i := 0; i < r.cfg.Obstacles.InitialCount; i++ {
		r.appendNext(s)
	}
}

// Spawn appends one obstacle once the trailing obstacle has entered the track.
func (r *Rules) Spawn(s *sim.Session) {
	if last, ok := s.Track.Trailing(); ok && last.X >= r.cfg.Track.Width {
		return
	}
	r.appendNext(s)
}

// minSpacing keeps consecutive obstacles far enough apart that only one
// overlaps the anchor at a time.
func (r *Rules) minSpacing() float64 {
	return r.cfg.Obstacles.Width + r.cfg.Player.Size
}

// appendNext takes spacing and gap height from the next layout pattern,
// falling back to procedural values for missing or non-positive fields.
// Pattern values are clamped so the barrier fits the track.
func (r *Rules) appendNext(s *sim.Session) {
	spacing := r.cfg.Obstacles.DefaultSpacing
	var top float64

	if p, ok := s.Cursor.Next(); ok {
		if p.Spacing > 0 {
			spacing = p.Spacing
		}
		if p.Height > 0 {
			top = p.Height
		}
	}

	spacing = max(spacing, r.minSpacing())

	maxTop := r.cfg.Track.Height - r.gap
	if top <= 0 {
		margin := r.cfg.Obstacles.Margin
		top = s.Uniform(margin, maxTop-margin)
	}
	top = core.ClampF(top, 0, maxTop)

	x := r.cfg.Track.Width
	if last, ok := s.Track.Trailing(); ok {
		x = last.X + spacing
	}

	s.Track.Append(sim.Obstacle{
		X:         x,
		Width:     r.cfg.Obstacles.Width,
		TopHeight: top,
		Gap:       r.gap,
	})
}

// Collides reports a ceiling or floor hit, or a barrier hit on the active obstacle.
func (r *Rules) Collides(s *sim.Session, active sim.Obstacle, hasActive bool) bool {
	size := r.cfg.Player.Size
	if sim.OutOfBounds(s.Body.Position, size, r.cfg.Track.Height) {
		return true
	}
	return hasActive && sim.HitsGap(s.Body.Position, size, active)
}

// Score awards one point when the active obstacle's trailing edge passes the anchor.
func (r *Rules) Score(_ *sim.Session, active sim.Obstacle, hasActive bool) int {
	if hasActive && sim.PassedAnchor(active, r.cfg.Player.X, r.cfg.Physics.Speed) {
		return 1
	}
	return 0
}

func (r *Rules) DisplayScore(raw int) int { return raw }
