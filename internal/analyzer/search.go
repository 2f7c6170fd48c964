package analyzer

import (
	"strings"

	"pdf-smart-tools/internal/domain"
)

// QueryWords lower-cases the query and keeps the whitespace separated words
// longer than two characters.
func QueryWords(query string) []string {
	words := make([]string, 0)
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if runeLen(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}

// Search finds every line containing any query word as a substring, walking
// pages in order and lines in order within a page. Only the first
// MaxSearchMatches matches are returned; TotalMatches counts all of them.
func Search(doc *domain.Document, query string) domain.SearchResult {
	result := domain.SearchResult{Matches: make([]domain.SearchMatch, 0)}

	words := QueryWords(query)
	if doc == nil || len(words) == 0 {
		return result
	}

	for _, page := range doc.Pages {
		for i, line := range page.Lines {
			if !containsAny(strings.ToLower(line), words) {
				continue
			}

			result.TotalMatches++
			if len(result.Matches) >= MaxSearchMatches {
				continue
			}

			start := max(0, i-1)
			end := min(len(page.Lines), i+2)
			context := strings.Join(page.Lines[start:end], " ")
			if runeLen(context) > ContextLimit {
				context = truncateRunes(context, ContextLimit) + "..."
			}

			result.Matches = append(result.Matches, domain.SearchMatch{
				PageNumber: page.PageNumber,
				Context:    context,
				Highlight:  truncateRunes(line, HighlightLimit),
			})
		}
	}

	return result
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
