package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/reportscan/model"
)

// Glyph is one positioned piece of text as shown by a page's content stream.
type Glyph struct {
	Text     string
	X        float64 // left edge
	Y        float64 // baseline
	Width    float64
	FontSize float64
}

// box returns the glyph's extent, from descent below the baseline to
// one font size above the descent line.
func (g Glyph) box(descent float64) model.BBox {
	size := g.FontSize
	if size <= 0 {
		size = 1
	}
	bottom := g.Y - size*descent
	return model.NewBBox(g.X, bottom, g.Width, size)
}

// Block represents a contiguous rectangular region of text on a page.
type Block struct {
	// BBox is the bounding box of the block
	BBox model.BBox

	// Lines are the block's text lines, top to bottom
	Lines []string

	// Index is the block's position in reading order (0-based)
	Index int
}

// Text returns the block's lines joined by newlines.
func (b Block) Text() string {
	return strings.Join(b.Lines, "\n")
}

// Element converts the block into a layout element.
func (b Block) Element() model.Element {
	return model.Element{Text: b.Text(), BBox: b.BBox}
}

// BlockConfig holds configuration for block detection. Ratios are fractions
// of the font size of the glyphs involved.
type BlockConfig struct {
	// RowTolerance is the baseline distance under which two glyphs share a row
	RowTolerance float64

	// WordGap is the horizontal gap above which a space is inserted between glyphs
	WordGap float64

	// SegmentGap is the horizontal gap above which a row is split into separate segments
	SegmentGap float64

	// LineMargin is the vertical gap under which a segment stacks onto the block above it
	LineMargin float64

	// Descent is the portion of the font size drawn below the baseline
	Descent float64
}

// DefaultBlockConfig returns sensible default configuration
func DefaultBlockConfig() BlockConfig {
	return BlockConfig{
		RowTolerance: 0.5,
		WordGap:      0.15,
		SegmentGap:   1.0,
		LineMargin:   0.5,
		Descent:      0.2,
	}
}

// BlockDetector detects text blocks on a page
type BlockDetector struct {
	config BlockConfig
}

// NewBlockDetector creates a new block detector with default configuration
func NewBlockDetector() *BlockDetector {
	return &BlockDetector{
		config: DefaultBlockConfig(),
	}
}

// NewBlockDetectorWithConfig creates a block detector with custom configuration
func NewBlockDetectorWithConfig(config BlockConfig) *BlockDetector {
	return &BlockDetector{
		config: config,
	}
}

// segment is a run of glyphs on one row with no wide gaps inside it.
type segment struct {
	text string
	bbox model.BBox
	row  int
}

// Detect groups glyphs into blocks, returned top to bottom then left to right.
func (d *BlockDetector) Detect(glyphs []Glyph) []Block {
	rows := d.groupIntoRows(glyphs)
	if len(rows) == 0 {
		return nil
	}

	var segments []segment
	for i, row := range rows {
		segments = append(segments, d.splitRow(row, i)...)
	}

	blocks := d.stackSegments(segments)

	sort.SliceStable(blocks, func(i, j int) bool {
		ti, tj := blocks[i].BBox.Top(), blocks[j].BBox.Top()
		if ti != tj {
			return ti > tj // Higher on page first
		}
		return blocks[i].BBox.Left() < blocks[j].BBox.Left()
	})
	for i := range blocks {
		blocks[i].Index = i
	}
	return blocks
}

// Elements is Detect converted to layout elements.
func (d *BlockDetector) Elements(glyphs []Glyph) []model.Element {
	blocks := d.Detect(glyphs)
	if len(blocks) == 0 {
		return nil
	}
	out := make([]model.Element, len(blocks))
	for i, b := range blocks {
		out[i] = b.Element()
	}
	return out
}

// groupIntoRows groups glyphs into rows by baseline, top row first, each
// row sorted left to right. Whitespace-only glyphs are dropped; word breaks
// are recovered from gaps.
func (d *BlockDetector) groupIntoRows(glyphs []Glyph) [][]Glyph {
	sorted := make([]Glyph, 0, len(glyphs))
	for _, g := range glyphs {
		if strings.TrimSpace(g.Text) != "" {
			sorted = append(sorted, g)
		}
	}
	if len(sorted) == 0 {
		return nil
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y // Higher Y first (top of page)
		}
		return sorted[i].X < sorted[j].X
	})

	var rows [][]Glyph
	current := []Glyph{sorted[0]}
	rowY := sorted[0].Y

	for _, g := range sorted[1:] {
		last := current[len(current)-1]
		tolerance := (g.FontSize + last.FontSize) / 2 * d.config.RowTolerance
		if absFloat64(rowY-g.Y) <= tolerance {
			current = append(current, g)
			continue
		}
		rows = append(rows, current)
		current = []Glyph{g}
		rowY = g.Y
	}
	rows = append(rows, current)

	for i := range rows {
		row := rows[i]
		sort.SliceStable(row, func(a, b int) bool {
			return row[a].X < row[b].X
		})
	}
	return rows
}

// splitRow cuts a row into segments at gaps wider than SegmentGap.
func (d *BlockDetector) splitRow(row []Glyph, rowIndex int) []segment {
	var (
		out  []segment
		text strings.Builder
		bbox model.BBox
		prev Glyph
	)

	flush := func() {
		if text.Len() > 0 {
			out = append(out, segment{text: text.String(), bbox: bbox, row: rowIndex})
		}
		text.Reset()
	}

	for i, g := range row {
		box := g.box(d.config.Descent)
		if i == 0 {
			text.WriteString(g.Text)
			bbox = box
			prev = g
			continue
		}

		gap := g.X - (prev.X + prev.Width)
		size := max(g.FontSize, prev.FontSize)
		switch {
		case gap > size*d.config.SegmentGap:
			flush()
			bbox = box
		case gap > size*d.config.WordGap:
			text.WriteByte(' ')
			bbox = bbox.Union(box)
		default:
			bbox = bbox.Union(box)
		}
		text.WriteString(g.Text)
		prev = g
	}
	flush()

	return out
}

// stackSegments joins each segment to the block directly above it when the
// vertical gap is small and the two overlap horizontally. A block takes at
// most one segment per row.
func (d *BlockDetector) stackSegments(segments []segment) []Block {
	type open struct {
		block   Block
		last    model.BBox
		lastRow int
	}
	var blocks []*open

	for _, seg := range segments {
		var target *open
		for _, b := range blocks {
			if b.lastRow == seg.row {
				continue
			}
			gap := b.last.Bottom() - seg.bbox.Top()
			threshold := min(b.last.Height, seg.bbox.Height) * d.config.LineMargin
			overlaps := seg.bbox.Left() < b.last.Right() && seg.bbox.Right() > b.last.Left()
			if gap <= threshold && gap >= -threshold && overlaps {
				target = b
				break
			}
		}

		if target == nil {
			blocks = append(blocks, &open{
				block:   Block{BBox: seg.bbox, Lines: []string{seg.text}},
				last:    seg.bbox,
				lastRow: seg.row,
			})
			continue
		}
		target.block.Lines = append(target.block.Lines, seg.text)
		target.block.BBox = target.block.BBox.Union(seg.bbox)
		target.last = seg.bbox
		target.lastRow = seg.row
	}

	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.block
	}
	return out
}

func absFloat64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
