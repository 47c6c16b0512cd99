package extract

import (
	"regexp"
	"sort"

	"github.com/tsawler/reportscan/model"
)

// unitPattern matches a number immediately followed by unit, capturing the
// number.
func unitPattern(unit string) *regexp.Regexp {
	return regexp.MustCompile(`(\d+\.?\d*)\s*` + regexp.QuoteMeta(unit))
}

// ResolveHardness collects up to limit hardness readings from elements,
// top of page first. Each element containing spec.Label yields at most one
// value: the number before spec.Unit in its own text, or else the number
// before spec.Unit in its nearest right neighbour. Labels match
// case-insensitively, so "hardness" and "HARDNESS" count as labels too, and
// elements holding the label are never taken as neighbours. The unit match is
// case-sensitive.
func ResolveHardness(elements []model.Element, spec HardnessSpec, g Geometry, limit int) []string {
	if limit <= 0 {
		return nil
	}

	m := newMatcher(spec.Label)
	unit := unitPattern(spec.Unit)

	var labels []model.Element
	for _, e := range elements {
		if m.in(e.Text) {
			labels = append(labels, e)
		}
	}
	sort.SliceStable(labels, func(i, j int) bool {
		return labels[i].BBox.Top() > labels[j].BBox.Top()
	})

	var values []string
	for _, label := range labels {
		if sub := unit.FindStringSubmatch(label.Text); sub != nil {
			values = append(values, sub[1])
		} else if text, ok := nearestRight(elements, m, label.BBox, g, unit.MatchString); ok {
			values = append(values, unit.FindStringSubmatch(text)[1])
		}
		if len(values) >= limit {
			break
		}
	}
	return values
}
