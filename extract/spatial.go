package extract

import (
	"math"
	"regexp"
	"strings"

	"github.com/tsawler/reportscan/model"
)

var leadingNumber = regexp.MustCompile(`\d+\.?\d*`)

// Geometry bounds a nearest-right neighbour search around a label box.
type Geometry struct {
	// RowTolerance widens the label's vertical band on both sides.
	RowTolerance float64

	// LeftSlack is how far left of the label's left edge a neighbour may start.
	LeftSlack float64
}

// nearestRight returns the trimmed text of the element that minimizes the
// horizontal gap from label's right edge, among elements that do not
// themselves contain the label, share label's row band, start no further
// left than LeftSlack, and satisfy qualifies. Ties keep the element met
// first in scan order.
func nearestRight(elements []model.Element, label *matcher, box model.BBox, g Geometry, qualifies func(string) bool) (string, bool) {
	best := math.Inf(1)
	var bestText string
	found := false

	for _, e := range elements {
		text := strings.TrimSpace(e.Text)
		if label.in(text) {
			continue
		}
		if !box.SharesRow(e.BBox, g.RowTolerance) {
			continue
		}
		if e.BBox.Left() < box.Left()-g.LeftSlack {
			continue
		}
		if !qualifies(text) {
			continue
		}
		if d := box.GapTo(e.BBox); d < best {
			best = d
			bestText = text
			found = true
		}
	}
	return bestText, found
}

// NeighborMatch is the outcome of a ResolveNearestRight search.
type NeighborMatch struct {
	// Value is the leading number of the neighbour, or its raw text when
	// Raw is set.
	Value string

	// Raw reports that the neighbour carried no number and Value is its
	// whole trimmed text.
	Raw bool
}

// ResolveNearestRight finds label in elements and resolves the value printed to
// its right in an element containing keyword.
func ResolveNearestRight(elements []model.Element, label, keyword string, g Geometry) (NeighborMatch, bool) {
	box, ok := LocateElement(elements, label)
	if !ok {
		return NeighborMatch{}, false
	}

	text, ok := nearestRight(elements, newMatcher(label), box, g, func(s string) bool {
		return strings.Contains(s, keyword)
	})
	if !ok {
		return NeighborMatch{}, false
	}

	if n := leadingNumber.FindString(text); n != "" {
		return NeighborMatch{Value: n}, true
	}
	return NeighborMatch{Value: text, Raw: true}, true
}
