package analyzer

import "regexp"

var statisticRe = regexp.MustCompile(`(?i)\d+(\.\d+)?\s*(%|percent|million|billion|thousand|dollars?|\$)`)

// ExtractStatistics returns up to MaxStatistics distinct numeric expressions
// such as "12%" or "3 million", in order of first occurrence and with their
// original casing.
func ExtractStatistics(text string) []string {
	stats := make([]string, 0, MaxStatistics)
	seen := make(map[string]bool)

	for _, match := range statisticRe.FindAllString(text, -1) {
		if seen[match] {
			continue
		}
		seen[match] = true
		stats = append(stats, match)
		if len(stats) == MaxStatistics {
			break
		}
	}
	return stats
}
