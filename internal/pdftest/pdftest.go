// Package pdftest builds small single-page PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// GlyphWidth is the advance of every printable glyph of the test font, in
// thousandths of the font size.
const GlyphWidth = 500

// Build returns a one-page PDF whose page content is the given stream. The
// stream can select the test font as /F1. A non-empty title is written to
// the document information dictionary.
func Build(title, content string) []byte {
	widths := make([]string, 0, 95)
	for c := 32; c <= 126; c++ {
		widths = append(widths, fmt.Sprint(GlyphWidth))
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [" + strings.Join(widths, " ") + "] >>",
		fmt.Sprintf("<< /Title (%s) >>", escape(title)),
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
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info 6 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

// TextLine returns a content stream fragment that draws parts at x, y with
// the test font. Parts alternate between strings and kerning adjustments,
// as in a TJ array: a string part is shown, a number part moves the pen.
func TextLine(size, x, y float64, parts ...any) string {
	var tj strings.Builder
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			tj.WriteString("(" + escape(v) + ")")
		default:
			fmt.Fprintf(&tj, " %v ", v)
		}
	}
	return fmt.Sprintf("BT /F1 %g Tf %g %g Td [%s] TJ ET\n", size, x, y, tj.String())
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)
	return r.Replace(s)
}
