package reader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/reportscan/layout"
	"github.com/tsawler/reportscan/model"
)

// Reader represents a PDF file reader
type Reader struct {
	file     *os.File
	pdf      *pdf.Reader
	detector *layout.BlockDetector
}

// Open opens a PDF file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return fromFile(f)
}

// fromFile parses f and takes ownership of it. f is closed when parsing
// fails, including when the parser panics.
func fromFile(f *os.File) (r *Reader, err error) {
	defer func() {
		if err != nil {
			f.Close()
		}
	}()
	defer recoverInto(&err, "opening PDF")

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	pr, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return &Reader{file: f, pdf: pr, detector: layout.NewBlockDetector()}, nil
}

// NewReader creates a PDF reader over already-loaded content.
func NewReader(ra io.ReaderAt, size int64) (r *Reader, err error) {
	defer recoverInto(&err, "opening PDF")

	pr, err := pdf.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return &Reader{pdf: pr, detector: layout.NewBlockDetector()}, nil
}

// WithBlockConfig replaces the block grouping configuration.
func (r *Reader) WithBlockConfig(config layout.BlockConfig) *Reader {
	r.detector = layout.NewBlockDetectorWithConfig(config)
	return r
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

// PageCount returns the number of pages.
func (r *Reader) PageCount() int {
	return r.pdf.NumPage()
}

// Glyphs returns the positioned glyphs shown on the page at index (0-based).
func (r *Reader) Glyphs(index int) (glyphs []layout.Glyph, err error) {
	if index < 0 {
		return nil, fmt.Errorf("page index %d out of range", index)
	}
	if index >= r.pdf.NumPage() {
		return nil, nil
	}

	// ledongthuc/pdf reports malformed content streams by panicking.
	defer recoverInto(&err, fmt.Sprintf("reading page %d", index))

	page := r.pdf.Page(index + 1)
	if page.V.IsNull() {
		return nil, nil
	}

	content := page.Content()
	glyphs = make([]layout.Glyph, 0, len(content.Text))
	for _, t := range content.Text {
		glyphs = append(glyphs, layout.Glyph{
			Text:     t.S,
			X:        t.X,
			Y:        t.Y,
			Width:    t.W,
			FontSize: t.FontSize,
		})
	}
	return glyphs, nil
}

// Elements returns the text blocks of the page at index (0-based).
func (r *Reader) Elements(index int) ([]model.Element, error) {
	glyphs, err := r.Glyphs(index)
	if err != nil {
		return nil, err
	}
	return r.detector.Elements(glyphs), nil
}

// ReadElements opens the PDF at path, reads the blocks of one page and
// closes it. A missing path or a zero-length file yields no elements and no
// error.
func ReadElements(path string, index int) ([]model.Element, error) {
	if path == "" {
		return nil, nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return nil, nil
	}

	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return r.Elements(index)
}

// recoverInto turns a panic raised while parsing into an error.
func recoverInto(err *error, op string) {
	if p := recover(); p != nil {
		*err = fmt.Errorf("%s: malformed PDF: %v", op, p)
	}
}
