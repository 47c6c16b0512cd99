// Package model provides the data types extracted from source reports.
//
// Two collections come out of a document read and are never modified after:
//
//   - [Fragment] - one non-empty, trimmed run of text from a DOCX document,
//     carrying its position in document reading order
//   - [Element] - one text-bearing layout block from a PDF page, carrying its
//     literal text and its [BBox]
//
// # Coordinates
//
// [BBox] uses the PDF page coordinate system: the origin is the bottom-left
// corner of the page and Y increases upward. A box with a larger Top is
// higher on the page. Proximity rules in the extract package depend on this
// convention; nothing in this module flips it.
package model
