package analyzer

import (
	"regexp"
	"strings"
)

var (
	upperLetterRe    = regexp.MustCompile(`[A-Z]`)
	numberedRe       = regexp.MustCompile(`^\d+(\.\d+)*\s+[A-Z]`)
	romanNumeralRe   = regexp.MustCompile(`^[IVXLCDM]+\.\s+[A-Z]`)
	sectionKeywordRe = regexp.MustCompile(`(?i)^(Chapter|Section|Part|Article)\s+\d+`)
)

// DetectHeadings returns the lines that look like headings, trimmed, in their
// original order. Repeated headings are kept.
func DetectHeadings(lines []string) []string {
	headings := make([]string, 0)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if IsHeading(trimmed) {
			headings = append(headings, trimmed)
		}
	}
	return headings
}

// IsHeading reports whether a single trimmed line qualifies as a heading.
func IsHeading(line string) bool {
	n := runeLen(line)
	if n < 3 || n > 100 {
		return false
	}

	switch {
	case line == strings.ToUpper(line) && n > 3 && upperLetterRe.MatchString(line):
		return true
	case numberedRe.MatchString(line):
		return true
	case romanNumeralRe.MatchString(line):
		return true
	case strings.HasSuffix(line, ":") && n < 60:
		return true
	case sectionKeywordRe.MatchString(line):
		return true
	}
	return false
}
