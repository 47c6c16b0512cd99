// Package docx reads the run text of DOCX (Office Open XML) documents as an
// ordered sequence of fragments.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/tsawler/reportscan/model"
)

// mainDocumentPart is the package part holding the document body.
const mainDocumentPart = "word/document.xml"

// Reader provides access to DOCX document content.
type Reader struct {
	zipReader *zip.ReadCloser
	fragments []model.Fragment
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{
		zipReader: zr,
	}

	// Validate required files exist
	if err := r.validate(); err != nil {
		zr.Close()
		return nil, err
	}

	if err := r.parseDocument(); err != nil {
		zr.Close()
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	return r, nil
}

// ReadFragments opens the DOCX at path, collects its fragments and closes it.
// A missing path or a zero-length file yields no fragments and no error.
func ReadFragments(path string) ([]model.Fragment, error) {
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

	return r.Fragments(), nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.zipReader != nil {
		err := r.zipReader.Close()
		r.zipReader = nil
		return err
	}
	return nil
}

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	for _, f := range r.zipReader.File {
		if f.Name == mainDocumentPart {
			return nil
		}
	}
	return fmt.Errorf("missing required file: %s", mainDocumentPart)
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// Fragments returns the document's run text fragments in document order.
// The returned slice is a copy.
func (r *Reader) Fragments() []model.Fragment {
	out := make([]model.Fragment, len(r.fragments))
	copy(out, r.fragments)
	return out
}

// Text returns the fragments joined by newlines.
func (r *Reader) Text() string {
	return strings.Join(model.Texts(r.fragments), "\n")
}

// parseDocument parses the main document content.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent(mainDocumentPart)
	if err != nil {
		return err
	}

	fragments, err := parseFragments(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", mainDocumentPart, err)
	}
	r.fragments = fragments
	return nil
}

// parseFragments walks the markup tree and collects the text of every
// namespaced <t> leaf (w:t runs, but also a:t in drawings and m:t in
// equations) whose trimmed text is non-empty.
func parseFragments(src io.Reader) ([]model.Fragment, error) {
	dec := xml.NewDecoder(src)

	var (
		fragments []model.Fragment
		buf       strings.Builder
		depth     int // >0 while inside a <t> element
		sawRoot   bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			sawRoot = true
			if isTextElement(el.Name) {
				if depth == 0 {
					buf.Reset()
				}
				depth++
			}
		case xml.CharData:
			if depth > 0 {
				buf.Write(el)
			}
		case xml.EndElement:
			if isTextElement(el.Name) && depth > 0 {
				depth--
				if depth == 0 {
					if s := strings.TrimSpace(buf.String()); s != "" {
						fragments = append(fragments, model.Fragment{Text: s, Index: len(fragments)})
					}
				}
			}
		}
	}

	if !sawRoot {
		return nil, errors.New("no root element")
	}
	return fragments, nil
}

func isTextElement(name xml.Name) bool {
	return name.Local == "t" && name.Space != ""
}
