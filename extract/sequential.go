package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/reportscan/model"
)

var (
	ratioPattern  = regexp.MustCompile(`\d+\.?\d*%\s*/\s*\d+\.?\d*%`)
	trailingPunct = regexp.MustCompile(`[\s.,]+$`)
)

// ratioSpan is how many window fragments RatioPattern concatenates.
const ratioSpan = 3

// Window returns the texts of up to size fragments following index. It
// returns fewer when the sequence ends early and none for NotFound.
func Window(fragments []model.Fragment, index, size int) []string {
	if index < 0 || index >= len(fragments) || size <= 0 {
		return nil
	}
	end := min(index+1+size, len(fragments))
	return model.Texts(fragments[index+1 : end])
}

// Apply runs a sequential rule over a window. Spatial and unknown rules
// resolve nothing.
func (r Rule) Apply(window []string) (string, bool) {
	switch r {
	case PercentOrSplitPercent:
		return percentOrSplitPercent(window)
	case Parenthesized:
		return parenthesized(window)
	case RatioPattern:
		return ratio(window)
	case NodularityPercent:
		return nodularityPercent(window)
	case NumericTrimNonPercent:
		return numericTrimNonPercent(window)
	default:
		return "", false
	}
}

func percentOrSplitPercent(window []string) (string, bool) {
	for j, s := range window {
		if strings.Contains(s, "%") && hasDigit(s) {
			return s, true
		}
		if hasDigit(s) && j+1 < len(window) && window[j+1] == "%" {
			return s + window[j+1], true
		}
	}
	return "", false
}

func parenthesized(window []string) (string, bool) {
	for _, s := range window {
		if strings.Contains(s, "(") && strings.Contains(s, ")") {
			return s, true
		}
	}
	return "", false
}

func ratio(window []string) (string, bool) {
	head := window[:min(ratioSpan, len(window))]
	if m := ratioPattern.FindString(strings.Join(head, "")); m != "" {
		return m, true
	}
	return "", false
}

func nodularityPercent(window []string) (string, bool) {
	for _, s := range window {
		if strings.Contains(s, "%") && utf8.RuneCountInString(s) > 1 {
			return s, true
		}
	}
	return "", false
}

func numericTrimNonPercent(window []string) (string, bool) {
	for _, s := range window {
		if hasDigit(s) && !strings.HasSuffix(s, "%") {
			return trailingPunct.ReplaceAllString(s, ""), true
		}
	}
	return "", false
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}
