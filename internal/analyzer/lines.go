package analyzer

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"pdf-smart-tools/internal/domain"
)

// GroupLines joins in-order text fragments into lines. A fragment starts a new
// line when its Y differs from the previous fragment's Y by more than
// LineBreakThreshold; otherwise it is appended to the current line. When the
// fragments carry a font size, a space is written between two fragments whose
// horizontal gap is at least WordSpaceMultiplier times that size.
func GroupLines(fragments []domain.TextFragment) []string {
	lines := make([]string, 0)
	var current strings.Builder
	var last domain.TextFragment
	haveLast := false

	flush := func() {
		if line := strings.TrimSpace(current.String()); line != "" {
			lines = append(lines, line)
		}
		current.Reset()
	}

	for _, f := range fragments {
		if haveLast && math.Abs(f.Y-last.Y) > LineBreakThreshold {
			flush()
		} else if haveLast && needsWordSpace(current.String(), last, f) {
			current.WriteByte(' ')
		}
		current.WriteString(f.Text)
		last = f
		haveLast = true
	}
	flush()

	return lines
}

// needsWordSpace reports whether next sits far enough right of prev to be a
// new word. Kerned text without explicit space glyphs relies on this.
func needsWordSpace(line string, prev, next domain.TextFragment) bool {
	if prev.FontSize <= 0 || line == "" || next.Text == "" {
		return false
	}
	if endsWithSpace(line) || startsWithSpace(next.Text) {
		return false
	}
	gap := next.X - (prev.X + prev.W)
	return gap >= WordSpaceMultiplier*prev.FontSize
}

func endsWithSpace(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsSpace(r)
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(r)
}

// SplitLines splits plain page text into trimmed, non-empty lines.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// AssembleDocument builds a Document from per-page line lists. Pages are
// numbered from 1 in the given order and page texts are joined with a blank
// line to form the full text. The title comes from metadata, falling back to
// the first line of the first page.
func AssembleDocument(pages [][]string, meta domain.DocumentMetadata) *domain.Document {
	doc := &domain.Document{
		TotalPages: len(pages),
		Pages:      make([]domain.Page, 0, len(pages)),
		Metadata:   meta,
	}

	var full strings.Builder
	for i, lines := range pages {
		if lines == nil {
			lines = []string{}
		}
		pageText := strings.Join(lines, "\n")
		doc.Pages = append(doc.Pages, domain.Page{
			PageNumber: i + 1,
			Text:       pageText,
			Lines:      lines,
		})
		full.WriteString(pageText)
		full.WriteString("\n\n")
	}
	doc.FullText = strings.TrimSpace(full.String())

	doc.Title = strings.TrimSpace(meta.Title)
	if doc.Title == "" && len(doc.Pages) > 0 && len(doc.Pages[0].Lines) > 0 {
		doc.Title = truncateRunes(doc.Pages[0].Lines[0], MaxTitleLength)
	}

	return doc
}
