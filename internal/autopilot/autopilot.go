// Package autopilot is a heuristic input source that decides when to jump
// from a snapshot. Headless simulation and replay tests use it in place of
// a player.
package autopilot

import "github.com/vovakirdan/soarscape/internal/sim"

// Pilot decides jumps for either mode.
type Pilot struct {
	// FlapClearance is how far above the bottom of the gap the body may
	// sink before the pilot flaps.
	FlapClearance float64

	// RunnerLead is the distance between the body and the next ground
	// obstacle at which the pilot jumps.
	RunnerLead float64
}

// New returns a pilot tuned for the default configurations.
func New() *Pilot {
	return &Pilot{FlapClearance: 20, RunnerLead: 60}
}

// Decide reports whether to request a jump for the next tick.
func (p *Pilot) Decide(snap sim.Snapshot) bool {
	if snap.State != sim.StatePlaying {
		return false
	}
	switch snap.Mode {
	case sim.FlapMode:
		return p.flap(snap)
	case sim.RunnerMode:
		return p.runner(snap)
	default:
		return false
	}
}

// next returns the first obstacle the body has not fully passed.
func next(snap sim.Snapshot) (sim.Obstacle, bool) {
	for _, o := range snap.Obstacles {
		if o.Right() > snap.Anchor.Min {
			return o, true
		}
	}
	return sim.Obstacle{}, false
}

// flap keeps the body just above the bottom edge of the upcoming gap,
// or the middle of the track when no obstacle is in sight.
func (p *Pilot) flap(snap sim.Snapshot) bool {
	floor := snap.Track.Height/2 + snap.BodySize
	if o, ok := next(snap); ok {
		floor = o.TopHeight + o.Gap
	}
	threshold := floor - snap.BodySize - p.FlapClearance
	return snap.Body.Velocity >= 0 && snap.Body.Position+snap.Body.Velocity > threshold
}

// runner jumps once the next obstacle is within the lead distance.
func (p *Pilot) runner(snap sim.Snapshot) bool {
	o, ok := next(snap)
	if !ok {
		return false
	}
	d := o.X - snap.Anchor.Max
	return d > 0 && d <= p.RunnerLead
}
