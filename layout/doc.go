// Package layout groups positioned PDF glyphs into text blocks.
//
// A page's glyphs are first bucketed into rows by baseline. Each row is cut
// into segments wherever the horizontal gap between neighbouring glyphs is
// wider than [BlockConfig].SegmentGap times the font size, and a space is
// inserted where the gap is wider than WordGap times the font size. Segments
// on consecutive rows that overlap horizontally and sit close enough
// vertically are stacked into one [Block].
//
//	detector := layout.NewBlockDetector()
//	for _, b := range detector.Detect(glyphs) {
//	    fmt.Println(b.BBox, b.Text())
//	}
//
// Coordinates follow PDF user space: origin at the bottom-left corner of the
// page, y growing upwards. Detect returns blocks top of page first, then left
// to right.
package layout
