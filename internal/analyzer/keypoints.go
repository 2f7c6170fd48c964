package analyzer

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// importantWords are matched as case-insensitive substrings, so "importantly"
// and "unimportant" both count for "important".
var importantWords = []string{
	"important", "significant", "key", "main", "primary",
	"essential", "critical", "fundamental", "notable", "major",
	"conclusion", "result", "finding", "summary", "objective",
	"purpose", "goal", "therefore", "thus", "consequently",
}

var (
	newlineRunRe = regexp.MustCompile(`\n+`)
	magnitudeRe  = regexp.MustCompile(`(?i)\d+%|\d+\s*(percent|million|billion|thousand)`)
)

type scoredSentence struct {
	sentence string
	score    int
}

// ExtractKeyPoints returns up to maxPoints sentences ordered by heuristic
// importance, highest first. Sentences with equal scores keep their order of
// appearance. A non-positive maxPoints yields an empty slice.
func ExtractKeyPoints(text string, maxPoints int) []string {
	points := make([]string, 0)
	if maxPoints <= 0 {
		return points
	}

	var scored []scoredSentence
	for _, s := range splitSentences(text) {
		s = strings.TrimSpace(s)
		if n := runeLen(s); n <= 20 || n >= 300 {
			continue
		}
		scored = append(scored, scoredSentence{sentence: s, score: ScoreSentence(s)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	for i := 0; i < len(scored) && i < maxPoints; i++ {
		points = append(points, scored[i].sentence)
	}
	return points
}

// ScoreSentence computes the importance score of a single sentence.
func ScoreSentence(sentence string) int {
	score := 0
	lower := strings.ToLower(sentence)

	for _, word := range importantWords {
		if strings.Contains(lower, word) {
			score += 2
		}
	}

	if magnitudeRe.MatchString(sentence) {
		score += 3
	}

	n := runeLen(sentence)
	if n > 50 && n < 200 {
		score++
	}

	if strings.Contains(sentence, "?") {
		score -= 2
	}
	if n < 40 {
		score--
	}

	return score
}

// splitSentences collapses newlines to spaces and splits on whitespace that
// follows a '.', '!' or '?'.
func splitSentences(text string) []string {
	text = newlineRunRe.ReplaceAllString(text, " ")

	var sentences []string
	start := 0
	var prev rune
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) && (prev == '.' || prev == '!' || prev == '?') {
			end := i
			for end < len(text) {
				r2, s2 := utf8.DecodeRuneInString(text[end:])
				if !unicode.IsSpace(r2) {
					break
				}
				end += s2
			}
			sentences = append(sentences, text[start:i])
			start = end
			prev = ' '
			i = end
			continue
		}
		prev = r
		i += size
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}

	return sentences
}
