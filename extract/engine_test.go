package extract

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/reportscan/model"
)

func newTestEngine(t *testing.T) (*Engine, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewEngine(DefaultTuning(), logger), &buf
}

// microReport mirrors the fragment order of a microstructure report, where
// the summary table repeats labels from the method description above it.
var microReport = []string{
	"Microstructure Examination",
	"Method: Graphite Nodularity and Graphite Size per ISO 945",
	"Sample", "A1",
	"Graphite Nodularity", "%", "88 %",
	"Nodular Particles per mm²", "215.",
	"Graphite Size", "6, ",
	"Graphite Form", "VI (spheroidal)",
	"Graphite Fraction", "11", "%",
	"Ferrite / Pearlite Ratio", "60%", " / ", "40%",
	"Remarks", "Ferrite / Pearlite Ratio 10%/90% typical",
}

func TestEngineSequential_MicroReport(t *testing.T) {
	e, buf := newTestEngine(t)

	got := e.Sequential(frags(microReport...), MicroFields()...)
	want := Result{
		"Graphite Nodularity":       "88 %",
		"Nodular Particles per mm²": "215",
		"Graphite Size":             "6",
		"Graphite Form":             "VI (spheroidal)",
		"Graphite Fraction":         "11%",
		"Ferrite / Pearlite Ratio":  "60% / 40%",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sequential() = %v, want %v", got, want)
	}
	if n := strings.Count(buf.String(), "field resolved"); n != len(want) {
		t.Errorf("logged %d resolutions, want %d", n, len(want))
	}
}

func TestEngineSequential_Idempotent(t *testing.T) {
	e, _ := newTestEngine(t)
	seq := frags(microReport...)

	first := e.Sequential(seq, MicroFields()...)
	second := e.Sequential(seq, MicroFields()...)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second run = %v, want %v", second, first)
	}
}

func TestEngineResolve_LabelAbsentRunsNoRule(t *testing.T) {
	e, buf := newTestEngine(t)

	_, ok := e.Resolve(frags("Graphite Size", "6"), FieldSpec{Label: "Graphite Form", Occurrence: Last, Rule: Parenthesized})
	if ok {
		t.Fatal("Resolve() should not resolve an absent label")
	}
	out := buf.String()
	if !strings.Contains(out, "label not found") {
		t.Errorf("missing not-found log:\n%s", out)
	}
	if strings.Contains(out, "no value near label") {
		t.Errorf("rule ran for an absent label:\n%s", out)
	}
}

func TestEngineResolve_WindowSize(t *testing.T) {
	var buf bytes.Buffer
	tuning := DefaultTuning()
	tuning.Window = 1
	e := NewEngine(tuning, slog.New(slog.NewTextHandler(&buf, nil)))

	spec := FieldSpec{Label: "Graphite Fraction", Rule: PercentOrSplitPercent}
	if _, ok := e.Resolve(frags("Graphite Fraction", "11", "%"), spec); ok {
		t.Error("a one-fragment window cannot see the split percent")
	}
	if v, ok := e.Resolve(frags("Graphite Fraction", "11%"), spec); !ok || v != "11%" {
		t.Errorf("Resolve() = %q, %v; want 11%%", v, ok)
	}
}

func TestEngineResolve_WrongShape(t *testing.T) {
	e, buf := newTestEngine(t)

	if _, ok := e.Resolve(frags("Tensile Strength", "520 Mpa"), TensileFields()[0]); ok {
		t.Error("Resolve() should not run a geometry rule")
	}
	elems := []model.Element{el("Graphite Size", 50, 700, 120, 712), el("6", 130, 700, 140, 712)}
	if _, ok := e.ResolveSpatial(elems, MicroFields()[2]); ok {
		t.Error("ResolveSpatial() should not run a window rule")
	}
	if n := strings.Count(buf.String(), "level=WARN"); n != 2 {
		t.Errorf("logged %d warnings, want 2:\n%s", n, buf.String())
	}
}

// tensilePage is laid out like a tensile certificate: the label column on
// the left, results to the right, and a requirements column that also
// carries units.
var tensilePage = []model.Element{
	el("Tensile Test Certificate", 50, 760, 250, 774),
	el("Tensile Strength", 50, 700, 146, 712),
	el("Min 450 Mpa", 350, 700, 416, 712),
	el("528.4 Mpa", 200, 700, 254, 712),
	el("Yield Strength", 50, 680, 134, 692),
	el("Rp0.2 Mpa", 200, 680, 256, 692),
	el("Elongation", 50, 660, 110, 672),
	el("18.5 %", 200, 660, 236, 672),
	el("Hardness", 50, 620, 100, 632),
	el("187 HBW", 200, 620, 240, 632),
	el("Hardness 192 HBW", 50, 600, 150, 612),
}

func TestEngineSpatial_TensilePage(t *testing.T) {
	e, buf := newTestEngine(t)

	got := e.Spatial(tensilePage, TensileFields()...)
	// Rp0.2 carries a number, so the leading-number capture wins over raw text.
	want := Result{
		"Tensile Strength": "528.4",
		"Yield Strength":   "0.2",
		"Elongation":       "18.5",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Spatial() = %v, want %v", got, want)
	}
	if !strings.Contains(buf.String(), "field resolved") {
		t.Error("resolutions should be logged")
	}
}

func TestEngineSpatial_RawFallbackLogged(t *testing.T) {
	e, buf := newTestEngine(t)
	elems := []model.Element{
		el("Yield Strength", 50, 680, 134, 692),
		el("see Mpa table", 200, 680, 280, 692),
	}

	v, ok := e.ResolveSpatial(elems, TensileFields()[1])
	if !ok || v != "see Mpa table" {
		t.Errorf("ResolveSpatial() = %q, %v; want raw text", v, ok)
	}
	if !strings.Contains(buf.String(), "using raw text") {
		t.Errorf("raw fallback should be logged:\n%s", buf.String())
	}
}

func TestEngineHardness(t *testing.T) {
	e, buf := newTestEngine(t)

	got := e.Hardness(tensilePage, DefaultHardness())
	if want := []string{"187", "192"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Hardness() = %q, want %q", got, want)
	}
	if n := strings.Count(buf.String(), "hardness resolved"); n != 2 {
		t.Errorf("logged %d readings, want 2", n)
	}
}

func TestEngine_EmptyInput(t *testing.T) {
	e := NewEngine(DefaultTuning(), nil)

	if got := e.Sequential(nil, MicroFields()...); len(got) != 0 {
		t.Errorf("Sequential(nil) = %v, want empty", got)
	}
	if got := e.Spatial(nil, TensileFields()...); len(got) != 0 {
		t.Errorf("Spatial(nil) = %v, want empty", got)
	}
	if got := e.Hardness(nil, DefaultHardness()); len(got) != 0 {
		t.Errorf("Hardness(nil) = %v, want empty", got)
	}
}

func TestResultLabels(t *testing.T) {
	r := Result{"b": "2", "a": "1"}
	if got := r.Labels(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Labels() = %v", got)
	}
	if v, ok := r.Lookup("a"); !ok || v != "1" {
		t.Errorf("Lookup(a) = %q, %v", v, ok)
	}
	if _, ok := r.Lookup("c"); ok {
		t.Error("Lookup(c) should miss")
	}
}
