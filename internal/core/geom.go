// Package core provides fundamental types and utilities shared by the simulation
// and the presentation layers. It contains no external dependencies (especially
// no Bubble Tea) to keep game logic pure and testable.
package core

// Span is a horizontal or vertical interval in world units, Min <= Max.
// Spans are treated as open intervals: touching edges do not overlap.
type Span struct {
	Min, Max float64
}

// NewSpan creates a span starting at start with the given length.
func NewSpan(start, length float64) Span {
	return Span{Min: start, Max: start + length}
}

// Len returns the length of the span.
func (s Span) Len() float64 {
	return s.Max - s.Min
}

// Overlaps reports whether two spans share any interior point.
func (s Span) Overlaps(other Span) bool {
	return s.Max > other.Min && s.Min < other.Max
}

// Contains reports whether v lies inside the closed span.
func (s Span) Contains(v float64) bool {
	return v >= s.Min && v <= s.Max
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
