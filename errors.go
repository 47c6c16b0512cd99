package reportscan

import (
	"errors"
	"fmt"

	"github.com/tsawler/reportscan/format"
)

// ErrUnsupportedFormat is wrapped by a DocumentReadError when a source is
// neither a DOCX nor a PDF, or is the wrong one for the requested operation.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// DocumentReadError reports a source document that exists but could not be
// opened or parsed. It is scoped to one document; callers treat it as "no
// data" for that document and carry on.
type DocumentReadError struct {
	Path   string
	Format format.Format
	Err    error
}

// Error implements the error interface.
func (e *DocumentReadError) Error() string {
	return fmt.Sprintf("read %s %s: %v", e.Format, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *DocumentReadError) Unwrap() error {
	return e.Err
}

func readError(path string, f format.Format, err error) error {
	return &DocumentReadError{Path: path, Format: f, Err: err}
}
