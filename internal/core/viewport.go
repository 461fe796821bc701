package core

import "math"

// Viewport projects world coordinates (layout distance units) onto a cell grid.
// The simulation runs in fixed world units; only the projection depends on the
// terminal size.
type Viewport struct {
	WorldW, WorldH float64
	Cols, Rows     int
}

// NewViewport creates a viewport mapping a world of worldW × worldH onto cols × rows cells.
func NewViewport(worldW, worldH float64, cols, rows int) Viewport {
	return Viewport{WorldW: worldW, WorldH: worldH, Cols: cols, Rows: rows}
}

// Col converts a world x coordinate to a column, rounding down.
func (v Viewport) Col(x float64) int {
	if v.WorldW <= 0 {
		return 0
	}
	return int(math.Floor(x * float64(v.Cols) / v.WorldW))
}

// Row converts a world y coordinate to a row, rounding down.
func (v Viewport) Row(y float64) int {
	if v.WorldH <= 0 {
		return 0
	}
	return int(math.Floor(y * float64(v.Rows) / v.WorldH))
}

// ColSpan converts a horizontal world span to a half-open column range [from, to).
// A non-empty span always covers at least one column.
func (v Viewport) ColSpan(s Span) (from, to int) {
	from = v.Col(s.Min)
	to = int(math.Ceil(s.Max * float64(v.Cols) / v.WorldW))
	if to <= from && s.Len() > 0 {
		to = from + 1
	}
	return from, to
}

// RowSpan converts a vertical world span to a half-open row range [from, to).
// A non-empty span always covers at least one row.
func (v Viewport) RowSpan(s Span) (from, to int) {
	from = v.Row(s.Min)
	to = int(math.Ceil(s.Max * float64(v.Rows) / v.WorldH))
	if to <= from && s.Len() > 0 {
		to = from + 1
	}
	return from, to
}
