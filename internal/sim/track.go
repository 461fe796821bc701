package sim

import "github.com/vovakirdan/soarscape/internal/core"

// Obstacle is one entry of the track. Modes use different fields:
// flap barriers use TopHeight and Gap (the passable opening between the
// top and bottom pipes); runner obstacles are ground-anchored and use Height.
type Obstacle struct {
	ID        uint64
	X         float64 // left edge
	Width     float64
	TopHeight float64 // flap: top of the gap
	Gap       float64 // flap: height of the gap
	Height    float64 // runner: height above the ground
}

// Right returns the trailing (right) edge.
func (o Obstacle) Right() float64 {
	return o.X + o.Width
}

// Span returns the horizontal extent of the obstacle.
func (o Obstacle) Span() core.Span {
	return core.NewSpan(o.X, o.Width)
}

// Track is the live obstacle queue, ordered by ascending X.
type Track struct {
	Obstacles []Obstacle

	// SpawnDistance is the distance the trailing obstacle must travel past
	// the spawn edge before the next spawn. Used by modes with randomized spacing.
	SpawnDistance float64

	nextID uint64
}

// Append adds an obstacle at the end of the queue and assigns it a
// session-unique ID. Obstacles must be appended in ascending X order.
func (t *Track) Append(o Obstacle) Obstacle {
	t.nextID++
	o.ID = t.nextID
	t.Obstacles = append(t.Obstacles, o)
	return o
}

// Trailing returns the most recently appended obstacle.
func (t *Track) Trailing() (Obstacle, bool) {
	if len(t.Obstacles) == 0 {
		return Obstacle{}, false
	}
	return t.Obstacles[len(t.Obstacles)-1], true
}

// Advance moves every obstacle dx units towards the leading (left) edge.
func (t *Track) Advance(dx float64) {
	for i := range t.Obstacles {
		t.Obstacles[i].X -= dx
	}
}

// Recycle drops obstacles that are fully past the leading edge and returns
// how many were removed.
func (t *Track) Recycle() int {
	kept := t.Obstacles[:0]
	for _, o := range t.Obstacles {
		if o.Right() >= 0 {
			kept = append(kept, o)
		}
	}
	removed := len(t.Obstacles) - len(kept)
	t.Obstacles = kept
	return removed
}

// Len returns the number of live obstacles.
func (t *Track) Len() int {
	return len(t.Obstacles)
}

// Sorted reports whether the queue is ordered by ascending X.
func (t *Track) Sorted() bool {
	for i := 1; i < len(t.Obstacles); i++ {
		if t.Obstacles[i].X < t.Obstacles[i-1].X {
			return false
		}
	}
	return true
}

// clone returns a copy that shares no obstacle storage with t.
func (t Track) clone() Track {
	out := t
	out.Obstacles = make([]Obstacle, len(t.Obstacles), len(t.Obstacles)+1)
	copy(out.Obstacles, t.Obstacles)
	return out
}
