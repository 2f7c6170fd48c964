package analyzer

import (
	"regexp"
	"strings"
)

var (
	hyphenBreakRe  = regexp.MustCompile(`(\w+)-\s*\n\s*(\w+)`)
	spaceRunRe     = regexp.MustCompile(`[ \t]+`)
	blankLineRunRe = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes raw extracted text: words split across a line break
// with a hyphen are rejoined, runs of spaces and tabs become one space, every
// line is trimmed, three or more consecutive newlines become a blank line and
// the result is trimmed.
//
// CleanText is idempotent: passes are repeated until nothing changes. A pass
// never lengthens the text, and one that keeps its length has only turned
// lone tabs into spaces, so the loop ends. Chains like "a-\nb-\nc" need more
// than one pass because regexp matches do not overlap.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for {
		next := cleanPass(text)
		if next == text {
			return next
		}
		text = next
	}
}

func cleanPass(text string) string {
	text = hyphenBreakRe.ReplaceAllString(text, "$1$2")
	text = spaceRunRe.ReplaceAllString(text, " ")

	// Trim before collapsing newlines so whitespace-only lines collapse too.
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	text = blankLineRunRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
