package analyzer

import (
	"reflect"
	"strings"
	"testing"
)

func TestIsHeading(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"All caps sentence", "REVENUE GREW 25% THIS QUARTER", true},
		{"Numbered outline", "2.1 Overview", true},
		{"Single number outline", "3 Results", true},
		{"Roman numeral", "IV. Discussion", true},
		{"Ends with colon", "Key findings:", true},
		{"Chapter keyword", "Chapter 7 The return", true},
		{"Section keyword lower case", "section 12", true},
		{"Article keyword", "ARTICLE 3", true},
		{"Plain sentence", "This is an ordinary sentence.", false},
		{"Too short", "AB", false},
		{"Three caps letters", "ABC", false},
		{"Digits only", "12345", false},
		{"Numbered without capital", "2.1 overview", false},
		{"Roman without period", "IV Discussion", false},
		{"Long colon line", strings.Repeat("word ", 12) + "end:", false},
		{"Too long caps", strings.Repeat("A", 101), false},
		{"Keyword without number", "Part of the plan", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHeading(tt.line); got != tt.want {
				t.Fatalf("IsHeading(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestDetectHeadings_PreservesOrderAndDuplicates(t *testing.T) {
	lines := []string{
		"INTRODUCTION",
		"Some body text that is not a heading.",
		"  1.2 Scope  ",
		"more body text",
		"INTRODUCTION",
		"Notes:",
	}

	got := DetectHeadings(lines)
	want := []string{"INTRODUCTION", "1.2 Scope", "INTRODUCTION", "Notes:"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DetectHeadings() = %v, want %v", got, want)
	}

	// Output must be a subsequence of the (trimmed) input.
	j := 0
	for _, line := range lines {
		if j < len(got) && strings.TrimSpace(line) == got[j] {
			j++
		}
	}
	if j != len(got) {
		t.Fatalf("headings %v are not a subsequence of the input", got)
	}
}

func TestDetectHeadings_Empty(t *testing.T) {
	got := DetectHeadings(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
