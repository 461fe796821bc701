package core

import "testing"

func TestSpanOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected bool
	}{
		{"overlapping", NewSpan(0, 10), NewSpan(5, 10), true},
		{"disjoint", NewSpan(0, 10), NewSpan(15, 10), false},
		{"touching edges (no overlap)", NewSpan(0, 10), NewSpan(10, 10), false},
		{"contained", NewSpan(0, 20), NewSpan(5, 5), true},
		{"sliver overlap", NewSpan(0, 10), NewSpan(9.5, 10), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestSpanLenContains(t *testing.T) {
	s := NewSpan(150, 40)
	if s.Len() != 40 {
		t.Errorf("Len() = %v, expected 40", s.Len())
	}
	if !s.Contains(150) || !s.Contains(190) {
		t.Error("Contains should include both edges")
	}
	if s.Contains(191) {
		t.Error("Contains(191) should be false")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}

	if got := ClampF(-1.5, 0, 10); got != 0 {
		t.Errorf("ClampF(-1.5, 0, 10) = %v, expected 0", got)
	}
	if got := ClampF(12.5, 0, 10); got != 10 {
		t.Errorf("ClampF(12.5, 0, 10) = %v, expected 10", got)
	}
}

func TestViewportProjection(t *testing.T) {
	v := NewViewport(800, 400, 80, 20)

	if got := v.Col(150); got != 15 {
		t.Errorf("Col(150) = %d, expected 15", got)
	}
	if got := v.Row(200); got != 10 {
		t.Errorf("Row(200) = %d, expected 10", got)
	}
	if got := v.Col(-5); got != -1 {
		t.Errorf("Col(-5) = %d, expected -1 (floor)", got)
	}

	from, to := v.ColSpan(NewSpan(150, 80))
	if from != 15 || to != 23 {
		t.Errorf("ColSpan = [%d, %d), expected [15, 23)", from, to)
	}

	// Tiny spans still occupy a cell.
	from, to = v.RowSpan(NewSpan(101, 1))
	if to-from != 1 {
		t.Errorf("RowSpan of a thin span covers %d rows, expected 1", to-from)
	}
}
