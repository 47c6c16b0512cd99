// Package fixture writes small DOCX and PDF files for tests.
package fixture

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// DOCX writes a DOCX package whose body holds one paragraph per entry of
// paragraphs, each entry split into one run per element.
func DOCX(tb testing.TB, paragraphs ...[]string) string {
	tb.Helper()

	var body strings.Builder
	for _, runs := range paragraphs {
		body.WriteString("<w:p>")
		for _, run := range runs {
			fmt.Fprintf(&body, `<w:r><w:t xml:space="preserve">%s</w:t></w:r>`, escape(run))
		}
		body.WriteString("</w:p>")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct{ name, data string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`},
		{"word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() + `</w:body></w:document>`},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			tb.Fatalf("fixture: create %s: %v", p.name, err)
		}
		w.Write([]byte(p.data))
	}
	if err := zw.Close(); err != nil {
		tb.Fatalf("fixture: close zip: %v", err)
	}

	return write(tb, "report.docx", buf.Bytes())
}

// Text is one string drawn at (X, Y) in 12pt Helvetica. Every glyph is
// 6 units wide.
type Text struct {
	X, Y float64
	S    string
}

// PDF writes a single-page US Letter PDF showing texts.
func PDF(tb testing.TB, texts ...Text) string {
	tb.Helper()
	return write(tb, "report.pdf", PDFBytes(texts...))
}

// PDFBytes builds the bytes of a single-page PDF showing texts.
func PDFBytes(texts ...Text) []byte {
	var content strings.Builder
	for _, t := range texts {
		fmt.Fprintf(&content, "BT /F1 12 Tf %g %g Td (%s) Tj ET\n", t.X, t.Y, pdfEscape(t.S))
	}

	widths := strings.TrimSpace(strings.Repeat("500 ", 95))
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [" + widths + "] >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

// File writes data under a fresh temporary directory.
func File(tb testing.TB, name string, data []byte) string {
	tb.Helper()
	return write(tb, name, data)
}

func write(tb testing.TB, name string, data []byte) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		tb.Fatalf("fixture: write %s: %v", name, err)
	}
	return path
}

func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '&':
			b.WriteString("&amp;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func pdfEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
