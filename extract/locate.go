package extract

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/reportscan/model"
)

// NotFound is the index LocateFragment returns when no fragment matches.
const NotFound = -1

// matcher tests case-insensitive containment of one label. A matcher holds
// a cases.Caser and must not be shared between goroutines.
type matcher struct {
	caser  cases.Caser
	needle string
}

func newMatcher(label string) *matcher {
	m := &matcher{caser: cases.Fold()}
	m.needle = m.fold(label)
	return m
}

func (m *matcher) fold(s string) string {
	return m.caser.String(norm.NFC.String(s))
}

// in reports whether text contains the label. An empty label matches nothing.
func (m *matcher) in(text string) bool {
	if m.needle == "" {
		return false
	}
	return strings.Contains(m.fold(text), m.needle)
}

// LocateFragment returns the index of the fragment containing label, the
// first such fragment under First and the last under Last, or NotFound.
func LocateFragment(fragments []model.Fragment, label string, occurrence Occurrence) int {
	m := newMatcher(label)

	found := NotFound
	for i, f := range fragments {
		if !m.in(f.Text) {
			continue
		}
		if occurrence == First {
			return i
		}
		found = i
	}
	return found
}

// LocateElement returns the bounding box of the first element, in set
// order, whose text contains label.
func LocateElement(elements []model.Element, label string) (model.BBox, bool) {
	m := newMatcher(label)
	for _, e := range elements {
		if m.in(e.Text) {
			return e.BBox, true
		}
	}
	return model.BBox{}, false
}
