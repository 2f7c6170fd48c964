// Package analyzer implements the heuristic document text analysis used by the
// tools: line grouping, text cleaning, heading detection, key point scoring,
// statistics extraction, keyword search and file name suggestion.
//
// Every function in this package is pure. Nothing here performs I/O or keeps
// state between calls, so the functions are safe for concurrent use.
package analyzer

import "unicode/utf8"

const (
	// DefaultKeyPoints is the number of key points used by SmartSummary.
	DefaultKeyPoints = 5
	// ToolKeyPoints is the number of key points returned by the key points tool.
	ToolKeyPoints = 8

	MaxSearchMatches   = 10
	ContextLimit       = 250
	HighlightLimit     = 150
	MaxSuggestions     = 3
	MaxStatistics      = 5
	MaxSummaryHeadings = 10
	MaxTitleLength     = 100

	// LineBreakThreshold is the vertical distance between two fragments
	// above which the second fragment starts a new line.
	LineBreakThreshold = 5.0

	// WordSpaceMultiplier is the horizontal gap, as a fraction of the font
	// size, from the end of one fragment to the start of the next above
	// which a word space is inserted.
	WordSpaceMultiplier = 0.2
)

// truncateRunes returns at most n runes of s.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
