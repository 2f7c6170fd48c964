package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// sanitizeText NFC-normalizes text and removes characters that cannot be
// JSON-encoded or stored in Postgres text columns: NUL, other control
// characters except tab and newline, and invalid UTF-8.
func sanitizeText(text string) string {
	var result strings.Builder
	result.Grow(len(text))

	for _, r := range norm.NFC.String(text) {
		switch {
		case r == utf8.RuneError:
			continue
		case r == '\t' || r == '\n':
			result.WriteRune(r)
		case r == '\r':
			result.WriteRune('\n')
		case unicode.IsControl(r):
			continue
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// sanitizePages cleans every line and drops the ones that end up empty.
func sanitizePages(pages [][]string) [][]string {
	out := make([][]string, 0, len(pages))
	for _, lines := range pages {
		clean := make([]string, 0, len(lines))
		for _, line := range lines {
			if line = strings.TrimSpace(sanitizeText(line)); line != "" {
				clean = append(clean, line)
			}
		}
		out = append(out, clean)
	}
	return out
}
