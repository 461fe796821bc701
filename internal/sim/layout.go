package sim

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ObstaclePattern is one externally supplied obstacle hint.
// Position only orders the patterns; Height is the top of the gap and
// Spacing the distance to the previous obstacle.
type ObstaclePattern struct {
	Position float64 `json:"position" yaml:"position" msgpack:"position"`
	Height   float64 `json:"height" yaml:"height" msgpack:"height"`
	Spacing  float64 `json:"spacing" yaml:"spacing" msgpack:"spacing"`
}

// LevelLayout is an ordered list of obstacle patterns. It may be empty.
type LevelLayout []ObstaclePattern

// layoutDocument is the wire form: {"obstacles": [...]}.
type layoutDocument struct {
	Obstacles *[]ObstaclePattern `json:"obstacles" yaml:"obstacles"`
}

// ErrNoObstacles is returned by DecodeLayout when the document has no obstacles array.
var ErrNoObstacles = errors.New("sim: layout has no obstacles array")

// DecodeLayout parses a layout document and reports why it is unusable.
func DecodeLayout(data []byte) (LevelLayout, error) {
	var doc layoutDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("sim: invalid layout: %w", err)
	}
	if doc.Obstacles == nil {
		return nil, ErrNoObstacles
	}
	return LevelLayout(*doc.Obstacles), nil
}

// ParseLayout parses a layout document. Malformed input is treated as an
// empty layout so procedural generation takes over; it never fails.
func ParseLayout(data []byte) LevelLayout {
	layout, err := DecodeLayout(data)
	if err != nil {
		return LevelLayout{}
	}
	return layout
}

// Clone returns an independent copy of the layout.
func (l LevelLayout) Clone() LevelLayout {
	if l == nil {
		return nil
	}
	out := make(LevelLayout, len(l))
	copy(out, l)
	return out
}

// LayoutCursor reads a layout cyclically.
type LayoutCursor struct {
	layout LevelLayout
	index  int
}

// NewLayoutCursor creates a cursor positioned at the first pattern.
func NewLayoutCursor(layout LevelLayout) LayoutCursor {
	return LayoutCursor{layout: layout}
}

// Next returns the current pattern and advances, wrapping at the end.
// It returns false when the layout is empty; callers then generate procedurally.
func (c *LayoutCursor) Next() (ObstaclePattern, bool) {
	if len(c.layout) == 0 {
		return ObstaclePattern{}, false
	}
	p := c.layout[c.index]
	c.index = (c.index + 1) % len(c.layout)
	return p, true
}

// Index returns the position of the pattern the next call will return.
func (c LayoutCursor) Index() int {
	return c.index
}

// Len returns the number of patterns in the layout.
func (c LayoutCursor) Len() int {
	return len(c.layout)
}
