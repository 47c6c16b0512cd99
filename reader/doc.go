// Package reader reads the text-bearing layout blocks of a PDF page.
//
// Glyphs come from github.com/ledongthuc/pdf and are grouped into blocks by
// the layout package. Each block becomes a [model.Element] with its literal
// text and bounding box in PDF page coordinates (origin bottom-left).
//
// # Opening PDF Files
//
// Use [Open] to open a PDF file for reading:
//
//	r, err := reader.Open("tensile.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	elements, err := r.Elements(0)
//
// Or use [ReadElements] for a one-shot read that treats a missing file as
// an empty page.
//
// # Page Access
//
// Pages are addressed by 0-based index. An index past the last page yields
// no elements.
package reader
