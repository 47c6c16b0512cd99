package model

import "math"

// BBox represents a bounding box (rectangle)
type BBox struct {
	X      float64 // Left
	Y      float64 // Bottom (PDF coordinate system)
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from coordinates
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// NewBBoxFromEdges creates a bounding box from its (x0, y0, x1, y1) edges.
// Edges given in the wrong order are swapped.
func NewBBoxFromEdges(x0, y0, x1, y1 float64) BBox {
	return BBox{
		X:      math.Min(x0, x1),
		Y:      math.Min(y0, y1),
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}

// Left returns the left edge X coordinate
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Bottom returns the bottom edge Y coordinate
func (b BBox) Bottom() float64 {
	return b.Y
}

// Top returns the top edge Y coordinate
func (b BBox) Top() float64 {
	return b.Y + b.Height
}

// Edges returns the box as (x0, y0, x1, y1).
func (b BBox) Edges() (x0, y0, x1, y1 float64) {
	return b.Left(), b.Bottom(), b.Right(), b.Top()
}

// Union returns the union of two bounding boxes
func (b BBox) Union(other BBox) BBox {
	x := math.Min(b.Left(), other.Left())
	y := math.Min(b.Bottom(), other.Bottom())
	right := math.Max(b.Right(), other.Right())
	top := math.Max(b.Top(), other.Top())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: top - y,
	}
}

// SharesRow reports whether other's vertical extent overlaps b's vertical
// band widened by tol on both sides: other.Bottom < b.Top+tol and
// other.Top > b.Bottom-tol.
func (b BBox) SharesRow(other BBox, tol float64) bool {
	return other.Bottom() < b.Top()+tol && other.Top() > b.Bottom()-tol
}

// GapTo returns the horizontal offset from b's right edge to other's left
// edge. Negative when other starts before b ends.
func (b BBox) GapTo(other BBox) float64 {
	return other.Left() - b.Right()
}

// IsEmpty returns true if the bounding box has zero area
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}
