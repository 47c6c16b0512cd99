package reportscan

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/tsawler/reportscan/docx"
	"github.com/tsawler/reportscan/extract"
	"github.com/tsawler/reportscan/format"
	"github.com/tsawler/reportscan/layout"
	"github.com/tsawler/reportscan/model"
	"github.com/tsawler/reportscan/reader"
)

// Extractor provides a fluent interface for extracting fields from DOCX and
// PDF reports. Each configuration method returns a new Extractor instance,
// making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	filename string
	options  ExtractOptions

	// Accumulated configuration error (fail-fast)
	err error
}

// clone creates a copy of the Extractor. Each chain method returns a new
// instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Page selects the PDF page to read (0-based). DOCX reports ignore it.
//
// Example:
//
//	res, err := reportscan.Open("hardness.pdf").Page(1).Fields(specs...)
func (e *Extractor) Page(index int) *Extractor {
	newExt := e.clone()
	if index < 0 && newExt.err == nil {
		newExt.err = fmt.Errorf("page index %d is negative", index)
	}
	newExt.options.page = index
	return newExt
}

// WithTuning replaces the engine limits.
func (e *Extractor) WithTuning(t extract.Tuning) *Extractor {
	newExt := e.clone()
	if err := t.Validate(); err != nil && newExt.err == nil {
		newExt.err = err
	}
	newExt.options.tuning = t
	return newExt
}

// WithBlockConfig replaces the glyph grouping used for PDF pages.
func (e *Extractor) WithBlockConfig(c layout.BlockConfig) *Extractor {
	newExt := e.clone()
	newExt.options.blocks = c
	return newExt
}

// WithLogger sets the logger that records each resolved field. A nil
// logger uses slog.Default().
func (e *Extractor) WithLogger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Format reports the format of the source document.
func (e *Extractor) Format() (format.Format, error) {
	if e.err != nil {
		return format.Unknown, e.err
	}
	return format.DetectFile(e.filename)
}

// Fragments returns the text fragments of a DOCX report in document order.
// A missing or empty file yields no fragments and no error.
func (e *Extractor) Fragments() ([]model.Fragment, error) {
	if e.err != nil {
		return nil, e.err
	}
	f, ok, err := e.source()
	if !ok || err != nil {
		return nil, err
	}
	if f != format.DOCX {
		return nil, readError(e.filename, f, ErrUnsupportedFormat)
	}

	frags, err := docx.ReadFragments(e.filename)
	if err != nil {
		return nil, readError(e.filename, f, err)
	}
	return frags, nil
}

// Elements returns the text blocks of the selected PDF page. A missing or
// empty file, or a page past the end, yields no elements and no error.
func (e *Extractor) Elements() ([]model.Element, error) {
	if e.err != nil {
		return nil, e.err
	}
	f, ok, err := e.source()
	if !ok || err != nil {
		return nil, err
	}
	if f != format.PDF {
		return nil, readError(e.filename, f, ErrUnsupportedFormat)
	}

	r, err := reader.Open(e.filename)
	if err != nil {
		return nil, readError(e.filename, f, err)
	}
	defer r.Close()

	elems, err := r.WithBlockConfig(e.options.blocks).Elements(e.options.page)
	if err != nil {
		return nil, readError(e.filename, f, err)
	}
	return elems, nil
}

// Fields resolves specs against the report. DOCX reports run the
// sequential rules over the fragment sequence; PDF reports run the
// nearest-right search over the selected page. A *DocumentReadError comes
// back with an empty, non-nil Result.
//
// Example:
//
//	res, err := reportscan.Open("micro.docx").Fields(extract.MicroFields()...)
func (e *Extractor) Fields(specs ...extract.FieldSpec) (extract.Result, error) {
	if e.err != nil {
		return extract.Result{}, e.err
	}
	f, ok, err := e.source()
	if err != nil {
		return extract.Result{}, err
	}
	if !ok {
		return extract.Result{}, nil
	}

	switch f {
	case format.DOCX:
		frags, err := e.Fragments()
		if err != nil {
			return extract.Result{}, err
		}
		return e.engine().Sequential(frags, specs...), nil

	case format.PDF:
		elems, err := e.Elements()
		if err != nil {
			return extract.Result{}, err
		}
		return e.engine().Spatial(elems, specs...), nil

	default:
		return extract.Result{}, readError(e.filename, f, ErrUnsupportedFormat)
	}
}

// Hardness collects up to Tuning.MaxHardness readings from the selected PDF
// page, top of page first.
func (e *Extractor) Hardness(spec extract.HardnessSpec) ([]string, error) {
	elems, err := e.Elements()
	if err != nil {
		return nil, err
	}
	return e.engine().Hardness(elems, spec), nil
}

func (e *Extractor) engine() *extract.Engine {
	return extract.NewEngine(e.options.tuning, e.options.logger)
}

// source reports the format of the file and whether it has any content to
// read. A missing path or a zero-length file is not an error.
func (e *Extractor) source() (format.Format, bool, error) {
	if e.filename == "" {
		return format.Unknown, false, nil
	}
	info, err := os.Stat(e.filename)
	if errors.Is(err, fs.ErrNotExist) {
		return format.Unknown, false, nil
	}
	if err != nil {
		return format.Unknown, false, readError(e.filename, format.Detect(e.filename), err)
	}
	if info.Size() == 0 {
		return format.Unknown, false, nil
	}

	f, err := format.DetectFile(e.filename)
	if err != nil {
		return format.Unknown, false, readError(e.filename, format.Detect(e.filename), err)
	}
	return f, true, nil
}
