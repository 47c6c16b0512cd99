package reportscan

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tsawler/reportscan/extract"
	"github.com/tsawler/reportscan/format"
	"github.com/tsawler/reportscan/internal/fixture"
)

func microDOCX(t *testing.T) string {
	return fixture.DOCX(t,
		[]string{"Microstructure Examination"},
		[]string{"Graphite Nodularity", "88 %"},
		[]string{"Nodular Particles per mm²", "215"},
		[]string{"Graphite Size", "6."},
		[]string{"Graphite Form", "VI (spheroidal)"},
		[]string{"Graphite Fraction", "11", "%"},
		[]string{"Ferrite / Pearlite Ratio", "60%", " / ", "40%"},
	)
}

func tensilePDF(t *testing.T) string {
	return fixture.PDF(t,
		fixture.Text{X: 50, Y: 700, S: "Tensile Strength"},
		fixture.Text{X: 200, Y: 700, S: "528 Mpa"},
		fixture.Text{X: 50, Y: 680, S: "Yield Strength"},
		fixture.Text{X: 200, Y: 680, S: "410 Mpa"},
		fixture.Text{X: 50, Y: 660, S: "Elongation"},
		fixture.Text{X: 200, Y: 660, S: "18.5 %"},
		fixture.Text{X: 50, Y: 600, S: "Hardness"},
		fixture.Text{X: 200, Y: 600, S: "187 HBW"},
		fixture.Text{X: 50, Y: 560, S: "Hardness 192 HBW"},
	)
}

func TestFields_DOCX(t *testing.T) {
	got, err := Open(microDOCX(t)).Fields(extract.MicroFields()...)
	if err != nil {
		t.Fatalf("Fields() error = %v", err)
	}

	want := extract.Result{
		"Graphite Nodularity":       "88 %",
		"Nodular Particles per mm²": "215",
		"Graphite Size":             "6",
		"Graphite Form":             "VI (spheroidal)",
		"Graphite Fraction":         "11%",
		"Ferrite / Pearlite Ratio":  "60%/40%",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Fields() = %v, want %v", got, want)
	}
}

func TestFields_DOCXRatio(t *testing.T) {
	tests := []struct {
		name string
		runs []string
		want string
	}{
		// Runs are trimmed, so a separate " / " run loses its spaces.
		{"split runs", []string{"Ferrite / Pearlite Ratio", "60%", " / ", "40%"}, "60%/40%"},
		{"single run", []string{"Ferrite / Pearlite Ratio", "60% / 40%"}, "60% / 40%"},
		{"separator beyond window head", []string{"Ferrite / Pearlite Ratio", "x", "60%", "/", "40%"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Open(fixture.DOCX(t, tt.runs)).Fields(extract.MicroFields()[5])
			if err != nil {
				t.Fatalf("Fields() error = %v", err)
			}
			got := res["Ferrite / Pearlite Ratio"]
			if got != tt.want {
				t.Errorf("ratio = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFields_PDF(t *testing.T) {
	got, err := Open(tensilePDF(t)).Page(0).Fields(extract.TensileFields()...)
	if err != nil {
		t.Fatalf("Fields() error = %v", err)
	}

	want := extract.Result{
		"Tensile Strength": "528",
		"Yield Strength":   "410",
		"Elongation":       "18.5",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Fields() = %v, want %v", got, want)
	}
}

func TestFields_Idempotent(t *testing.T) {
	ext := Open(tensilePDF(t))

	first := Must(ext.Fields(extract.TensileFields()...))
	second := Must(ext.Fields(extract.TensileFields()...))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second run = %v, want %v", second, first)
	}
}

func TestHardness(t *testing.T) {
	got, err := Open(tensilePDF(t)).Hardness(extract.DefaultHardness())
	if err != nil {
		t.Fatalf("Hardness() error = %v", err)
	}
	if want := []string{"187", "192"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Hardness() = %q, want %q", got, want)
	}
}

func TestHardness_MaxReadings(t *testing.T) {
	tuning := extract.DefaultTuning()
	tuning.MaxHardness = 1

	got, err := Open(tensilePDF(t)).WithTuning(tuning).Hardness(extract.DefaultHardness())
	if err != nil {
		t.Fatalf("Hardness() error = %v", err)
	}
	if want := []string{"187"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Hardness() = %q, want %q", got, want)
	}
}

func TestFields_MissingOrEmpty(t *testing.T) {
	paths := map[string]string{
		"no path":      "",
		"missing file": "/nonexistent/report.docx",
		"empty file":   fixture.File(t, "empty.pdf", nil),
	}

	for name, path := range paths {
		t.Run(name, func(t *testing.T) {
			res, err := Open(path).Fields(extract.TensileFields()...)
			if err != nil {
				t.Errorf("Fields() error = %v, want nil", err)
			}
			if res == nil || len(res) != 0 {
				t.Errorf("Fields() = %v, want empty result", res)
			}
		})
	}
}

func TestFields_CorruptDocument(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		data   string
		format format.Format
	}{
		{"corrupt docx", "micro.docx", "PK\x03\x04 not really a zip", format.DOCX},
		{"corrupt pdf", "tensile.pdf", "%PDF-1.4\nnothing else", format.PDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := fixture.File(t, tt.file, []byte(tt.data))

			res, err := Open(path).Fields(extract.MicroFields()...)
			var readErr *DocumentReadError
			if !errors.As(err, &readErr) {
				t.Fatalf("Fields() error = %v, want *DocumentReadError", err)
			}
			if readErr.Path != path || readErr.Format != tt.format {
				t.Errorf("DocumentReadError = %+v", readErr)
			}
			if res == nil || len(res) != 0 {
				t.Errorf("Fields() = %v, want empty result", res)
			}
		})
	}
}

func TestFields_UnsupportedFormat(t *testing.T) {
	path := fixture.File(t, "notes.txt", []byte("Graphite Size 6"))

	_, err := Open(path).Fields(extract.MicroFields()...)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Fields() error = %v, want ErrUnsupportedFormat", err)
	}

	if _, err := Open(microDOCX(t)).Hardness(extract.DefaultHardness()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Hardness() on DOCX error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestPage(t *testing.T) {
	path := tensilePDF(t)

	res, err := Open(path).Page(4).Fields(extract.TensileFields()...)
	if err != nil || len(res) != 0 {
		t.Errorf("page past the end = %v, %v; want empty, nil", res, err)
	}

	if _, err := Open(path).Page(-1).Fields(extract.TensileFields()...); err == nil {
		t.Error("negative page should fail")
	}
}

func TestExtractor_Immutable(t *testing.T) {
	base := Open("report.pdf")
	tuning := extract.DefaultTuning()
	tuning.Window = 0

	_ = base.Page(3)
	_ = base.WithTuning(tuning)

	if base.options.page != 0 {
		t.Errorf("base page = %d, want 0", base.options.page)
	}
	if base.err != nil {
		t.Errorf("base err = %v, want nil", base.err)
	}
	if base.WithTuning(tuning).err == nil {
		t.Error("invalid tuning should be recorded")
	}
}

func TestFormat(t *testing.T) {
	f, err := Open(microDOCX(t)).Format()
	if err != nil || f != format.DOCX {
		t.Errorf("Format() = %v, %v; want DOCX", f, err)
	}
}

func TestDocumentReadError(t *testing.T) {
	inner := errors.New("zip: not a valid zip file")
	err := readError("a.docx", format.DOCX, inner)

	if !errors.Is(err, inner) {
		t.Error("DocumentReadError should unwrap to its cause")
	}
	if got := err.Error(); got != "read DOCX a.docx: zip: not a valid zip file" {
		t.Errorf("Error() = %q", got)
	}
}
