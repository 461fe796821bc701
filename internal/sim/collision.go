package sim

import "github.com/vovakirdan/soarscape/internal/core"

// ActiveObstacle returns the first obstacle whose horizontal span overlaps
// the body's anchor span. At most one obstacle overlaps at a time.
func ActiveObstacle(obstacles []Obstacle, anchor core.Span) (Obstacle, bool) {
	for _, o := range obstacles {
		if o.Span().Overlaps(anchor) {
			return o, true
		}
	}
	return Obstacle{}, false
}

// HitsGap reports whether a body at position with the given size touches
// either barrier of a flap obstacle, i.e. it is not fully inside the gap.
func HitsGap(position, size float64, o Obstacle) bool {
	return position < o.TopHeight || position+size > o.TopHeight+o.Gap
}

// OutOfBounds reports whether the body left the vertical range [0, trackHeight-size].
func OutOfBounds(position, size, trackHeight float64) bool {
	return position < 0 || position > trackHeight-size
}

// HitsGround reports whether a body has not cleared a ground obstacle's top.
func HitsGround(position, size, trackHeight float64, o Obstacle) bool {
	return position+size > trackHeight-o.Height
}
