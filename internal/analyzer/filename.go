package analyzer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"pdf-smart-tools/internal/domain"
)

const (
	titleNameLength   = 50
	headingNameLength = 40
)

var (
	fileNameStripRe = regexp.MustCompile(`[^a-zA-Z0-9\s-]`)
	whitespaceRunRe = regexp.MustCompile(`\s+`)
)

// SanitizeFileName drops everything except ASCII letters, digits, whitespace
// and hyphens, trims, truncates to maxLen characters and replaces whitespace
// runs with underscores.
func SanitizeFileName(s string, maxLen int) string {
	s = fileNameStripRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return whitespaceRunRe.ReplaceAllString(s, "_")
}

// FallbackFileName is the date stamped name used when nothing better exists.
func FallbackFileName(now time.Time) string {
	return fmt.Sprintf("Document_%04d_%02d_%02d", now.Year(), int(now.Month()), now.Day())
}

// SuggestFileNames proposes up to MaxSuggestions file names without
// extension: the sanitized title, the first heading of the first page and a
// date stamped fallback, in that order and without duplicates.
func SuggestFileNames(doc *domain.Document, now time.Time) []string {
	suggestions := make([]string, 0, MaxSuggestions)
	add := func(name string) {
		if len(suggestions) >= MaxSuggestions {
			return
		}
		for _, s := range suggestions {
			if s == name {
				return
			}
		}
		suggestions = append(suggestions, name)
	}

	if doc != nil {
		if title := SanitizeFileName(doc.Title, titleNameLength); len(title) > 3 {
			add(title)
		}

		var firstPage []string
		if len(doc.Pages) > 0 {
			firstPage = doc.Pages[0].Lines
		}
		if headings := DetectHeadings(firstPage); len(headings) > 0 {
			if heading := SanitizeFileName(headings[0], headingNameLength); len(heading) > 3 {
				add(heading)
			}
		}
	}

	add(FallbackFileName(now))
	return suggestions
}
