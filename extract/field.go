package extract

import (
	"fmt"
)

// Occurrence selects which match wins when a label appears more than once.
type Occurrence int

const (
	// First uses the earliest matching fragment.
	First Occurrence = iota
	// Last uses the latest matching fragment.
	Last
)

// String returns the configuration name of the occurrence policy.
func (o Occurrence) String() string {
	switch o {
	case First:
		return "first"
	case Last:
		return "last"
	default:
		return fmt.Sprintf("Occurrence(%d)", int(o))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Occurrence) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Occurrence) UnmarshalText(b []byte) error {
	switch string(b) {
	case "first":
		*o = First
	case "last":
		*o = Last
	default:
		return fmt.Errorf("unknown occurrence %q", string(b))
	}
	return nil
}

// Rule names the heuristic that recognizes a field's value.
type Rule int

const (
	// RuleUnknown is the zero value and resolves nothing.
	RuleUnknown Rule = iota

	// PercentOrSplitPercent accepts a fragment holding '%' and a digit, or a
	// digit-bearing fragment immediately followed by a lone "%" fragment.
	PercentOrSplitPercent

	// Parenthesized accepts the first fragment holding both '(' and ')'.
	Parenthesized

	// RatioPattern searches the first three window fragments, concatenated,
	// for "<n>% / <n>%".
	RatioPattern

	// NodularityPercent accepts the first fragment holding '%' that is
	// longer than one character.
	NodularityPercent

	// NumericTrimNonPercent accepts the first digit-bearing fragment not
	// ending in '%' and strips trailing whitespace, periods and commas.
	NumericTrimNonPercent

	// NearestRight resolves a PDF field from the nearest element to the
	// right of the label that carries the field's keyword.
	NearestRight
)

var ruleNames = map[Rule]string{
	PercentOrSplitPercent: "percent_or_split_percent",
	Parenthesized:         "parenthesized",
	RatioPattern:          "ratio_pattern",
	NodularityPercent:     "nodularity_percent",
	NumericTrimNonPercent: "numeric_trim_nonpercent",
	NearestRight:          "nearest_right",
}

// String returns the configuration name of the rule.
func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rule(%d)", int(r))
}

// Spatial reports whether the rule needs layout geometry rather than a
// fragment window.
func (r Rule) Spatial() bool {
	return r == NearestRight
}

// ParseRule returns the rule with the given configuration name.
func ParseRule(name string) (Rule, error) {
	for r, n := range ruleNames {
		if n == name {
			return r, nil
		}
	}
	return RuleUnknown, fmt.Errorf("unknown rule %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (r Rule) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rule) UnmarshalText(b []byte) error {
	parsed, err := ParseRule(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// FieldSpec is the static description of one field to extract.
type FieldSpec struct {
	// Label is the text marker that precedes the value.
	Label string

	// Occurrence picks between repeated labels. Sequential rules only.
	Occurrence Occurrence

	// Rule is the value heuristic.
	Rule Rule

	// Keyword must appear in the value element. NearestRight only.
	Keyword string
}

// Validate reports whether the field can be resolved.
func (f FieldSpec) Validate() error {
	if f.Label == "" {
		return fmt.Errorf("field spec: empty label")
	}
	if _, ok := ruleNames[f.Rule]; !ok {
		return fmt.Errorf("field %q: unknown rule %v", f.Label, f.Rule)
	}
	if f.Rule.Spatial() && f.Keyword == "" {
		return fmt.Errorf("field %q: rule %v needs a keyword", f.Label, f.Rule)
	}
	return nil
}

// HardnessSpec describes the multi-value hardness search.
type HardnessSpec struct {
	// Label is the word identifying a hardness reading, e.g. "Hardness".
	Label string

	// Unit is the marker that follows a hardness value, e.g. "HBW".
	Unit string
}

// Validate reports whether the field can be resolved.
func (h HardnessSpec) Validate() error {
	if h.Label == "" || h.Unit == "" {
		return fmt.Errorf("hardness spec: label and unit are required")
	}
	return nil
}

// MicroFields returns the microstructure fields of a DOCX report.
func MicroFields() []FieldSpec {
	return []FieldSpec{
		{Label: "Graphite Nodularity", Occurrence: Last, Rule: NodularityPercent},
		{Label: "Nodular Particles per mm²", Occurrence: Last, Rule: NumericTrimNonPercent},
		{Label: "Graphite Size", Occurrence: Last, Rule: NumericTrimNonPercent},
		{Label: "Graphite Form", Occurrence: Last, Rule: Parenthesized},
		{Label: "Graphite Fraction", Occurrence: Last, Rule: PercentOrSplitPercent},
		{Label: "Ferrite / Pearlite Ratio", Occurrence: First, Rule: RatioPattern},
	}
}

// TensileFields returns the mechanical fields of a tensile test PDF.
func TensileFields() []FieldSpec {
	return []FieldSpec{
		{Label: "Tensile Strength", Rule: NearestRight, Keyword: "Mpa"},
		{Label: "Yield Strength", Rule: NearestRight, Keyword: "Mpa"},
		{Label: "Elongation", Rule: NearestRight, Keyword: "%"},
	}
}

// DefaultHardness returns the Brinell hardness search.
func DefaultHardness() HardnessSpec {
	return HardnessSpec{Label: "Hardness", Unit: "HBW"}
}
