package model

import (
	"testing"
)

// ============================================================================
// BBox Tests
// ============================================================================

func TestNewBBox(t *testing.T) {
	bbox := NewBBox(10, 20, 100, 50)
	if bbox.X != 10 || bbox.Y != 20 || bbox.Width != 100 || bbox.Height != 50 {
		t.Errorf("NewBBox() = %+v, want {10, 20, 100, 50}", bbox)
	}
}

func TestNewBBoxFromEdges(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		want           BBox
	}{
		{"normal", 10, 20, 50, 70, BBox{10, 20, 40, 50}},
		{"reversed", 50, 70, 10, 20, BBox{10, 20, 40, 50}},
		{"degenerate", 10, 10, 10, 10, BBox{10, 10, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBBoxFromEdges(tt.x0, tt.y0, tt.x1, tt.y1)
			if got != tt.want {
				t.Errorf("NewBBoxFromEdges() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBBoxEdges(t *testing.T) {
	bbox := NewBBoxFromEdges(10, 20, 110, 70)

	x0, y0, x1, y1 := bbox.Edges()
	if x0 != 10 || y0 != 20 || x1 != 110 || y1 != 70 {
		t.Errorf("Edges() = (%v, %v, %v, %v), want (10, 20, 110, 70)", x0, y0, x1, y1)
	}
	if bbox.Left() != 10 {
		t.Errorf("Left() = %v, want 10", bbox.Left())
	}
	if bbox.Right() != 110 {
		t.Errorf("Right() = %v, want 110", bbox.Right())
	}
	if bbox.Bottom() != 20 {
		t.Errorf("Bottom() = %v, want 20", bbox.Bottom())
	}
	if bbox.Top() != 70 {
		t.Errorf("Top() = %v, want 70", bbox.Top())
	}
}

func TestBBoxUnion(t *testing.T) {
	a := NewBBoxFromEdges(0, 0, 10, 10)
	b := NewBBoxFromEdges(5, -5, 20, 8)

	got := a.Union(b)
	want := NewBBoxFromEdges(0, -5, 20, 10)
	if got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

func TestBBoxSharesRow(t *testing.T) {
	label := NewBBoxFromEdges(50, 700, 150, 712)

	tests := []struct {
		name  string
		other BBox
		tol   float64
		want  bool
	}{
		{"same row", NewBBoxFromEdges(200, 700, 260, 712), 2, true},
		{"slightly lower", NewBBoxFromEdges(200, 690, 260, 701), 2, true},
		{"just below band", NewBBoxFromEdges(200, 680, 260, 698), 2, false},
		{"touching bottom of band", NewBBoxFromEdges(200, 680, 260, 698), 2.5, true},
		{"above band", NewBBoxFromEdges(200, 714, 260, 726), 2, false},
		{"above within wide tolerance", NewBBoxFromEdges(200, 714, 260, 726), 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := label.SharesRow(tt.other, tt.tol); got != tt.want {
				t.Errorf("SharesRow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBBoxGapTo(t *testing.T) {
	label := NewBBoxFromEdges(50, 700, 150, 712)

	if got := label.GapTo(NewBBoxFromEdges(170, 700, 200, 712)); got != 20 {
		t.Errorf("GapTo() = %v, want 20", got)
	}
	if got := label.GapTo(NewBBoxFromEdges(140, 700, 200, 712)); got != -10 {
		t.Errorf("GapTo() = %v, want -10", got)
	}
}

func TestBBoxIsEmpty(t *testing.T) {
	if !NewBBox(0, 0, 0, 10).IsEmpty() {
		t.Error("zero-width box should be empty")
	}
	if NewBBox(0, 0, 5, 10).IsEmpty() {
		t.Error("5x10 box should not be empty")
	}
}

func TestTexts(t *testing.T) {
	frags := []Fragment{{Text: "a", Index: 0}, {Text: "b", Index: 1}}
	got := Texts(frags)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Texts() = %v, want [a b]", got)
	}
	if got := Texts(nil); len(got) != 0 {
		t.Errorf("Texts(nil) = %v, want empty", got)
	}
}
