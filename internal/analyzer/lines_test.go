package analyzer

import (
	"reflect"
	"strings"
	"testing"

	"pdf-smart-tools/internal/domain"
)

func TestGroupLines(t *testing.T) {
	tests := []struct {
		name      string
		fragments []domain.TextFragment
		want      []string
	}{
		{
			// Tests that fragments on the same baseline are concatenated without separators
			name: "Same baseline",
			fragments: []domain.TextFragment{
				{Text: "Hel", Y: 700},
				{Text: "lo ", Y: 700},
				{Text: "world", Y: 701},
			},
			want: []string{"Hello world"},
		},
		{
			// Tests that a vertical jump larger than the threshold starts a new line
			name: "Vertical jump",
			fragments: []domain.TextFragment{
				{Text: "First line", Y: 700},
				{Text: "Second line", Y: 686},
				{Text: "Third line", Y: 672},
			},
			want: []string{"First line", "Second line", "Third line"},
		},
		{
			// Tests that a difference of exactly the threshold stays on the same line
			name: "Threshold boundary",
			fragments: []domain.TextFragment{
				{Text: "x", Y: 100},
				{Text: "2", Y: 105},
				{Text: "y", Y: 110.5},
			},
			want: []string{"x2", "y"},
		},
		{
			// Tests that blank lines are dropped and lines are trimmed
			name: "Blank lines",
			fragments: []domain.TextFragment{
				{Text: "  padded  ", Y: 500},
				{Text: "   ", Y: 480},
				{Text: "next", Y: 460},
			},
			want: []string{"padded", "next"},
		},
		{
			// Tests that a kerning gap between glyph runs becomes a word space
			name: "Kerned words",
			fragments: []domain.TextFragment{
				{Text: "Annual", X: 72, W: 30, FontSize: 12, Y: 700},
				{Text: "Report", X: 105.6, W: 30, FontSize: 12, Y: 700},
				{Text: "Summary", X: 139.2, W: 40, FontSize: 12, Y: 700},
			},
			want: []string{"Annual Report Summary"},
		},
		{
			// Tests that touching glyphs of one word stay joined
			name: "Adjacent glyphs",
			fragments: []domain.TextFragment{
				{Text: "w", X: 72, W: 8, FontSize: 12, Y: 700},
				{Text: "o", X: 80, W: 6, FontSize: 12, Y: 700},
				{Text: "rd", X: 86.5, W: 10, FontSize: 12, Y: 700},
			},
			want: []string{"word"},
		},
		{
			// Tests that an explicit space glyph is not doubled
			name: "Explicit space",
			fragments: []domain.TextFragment{
				{Text: "a", X: 72, W: 6, FontSize: 12, Y: 700},
				{Text: " ", X: 78, W: 3, FontSize: 12, Y: 700},
				{Text: "b", X: 90, W: 6, FontSize: 12, Y: 700},
			},
			want: []string{"a b"},
		},
		{
			// Tests that a backwards move on the same baseline adds no space
			name: "Overlap",
			fragments: []domain.TextFragment{
				{Text: "x", X: 100, W: 6, FontSize: 12, Y: 700},
				{Text: "y", X: 90, W: 6, FontSize: 12, Y: 700},
			},
			want: []string{"xy"},
		},
		{
			// Tests that no fragments yield no lines
			name:      "Empty",
			fragments: nil,
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GroupLines(tt.fragments)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("GroupLines() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("one\r\n\r\n  two  \rthree\n")
	want := []string{"one", "two", "three"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitLines() = %v, want %v", got, want)
	}
}

func TestAssembleDocument(t *testing.T) {
	doc := AssembleDocument(
		[][]string{{"Quarterly Report", "Intro text"}, {}, {"Closing"}},
		domain.DocumentMetadata{Author: "Finance"},
	)

	if doc.TotalPages != 3 || len(doc.Pages) != 3 {
		t.Fatalf("expected 3 pages, got %d/%d", doc.TotalPages, len(doc.Pages))
	}
	for i, page := range doc.Pages {
		if page.PageNumber != i+1 {
			t.Fatalf("page %d has number %d", i, page.PageNumber)
		}
	}
	if doc.Pages[0].Text != "Quarterly Report\nIntro text" {
		t.Fatalf("unexpected page text %q", doc.Pages[0].Text)
	}
	if doc.FullText != "Quarterly Report\nIntro text\n\n\n\nClosing" {
		t.Fatalf("unexpected full text %q", doc.FullText)
	}
	if doc.Title != "Quarterly Report" {
		t.Fatalf("expected title from first line, got %q", doc.Title)
	}
	if doc.Metadata.Author != "Finance" {
		t.Fatalf("expected metadata to be kept, got %+v", doc.Metadata)
	}
}

func TestAssembleDocument_Title(t *testing.T) {
	doc := AssembleDocument([][]string{{"first line"}}, domain.DocumentMetadata{Title: "Embedded Title"})
	if doc.Title != "Embedded Title" {
		t.Fatalf("expected metadata title, got %q", doc.Title)
	}

	long := strings.Repeat("w", 150)
	doc = AssembleDocument([][]string{{long}}, domain.DocumentMetadata{})
	if runeLen(doc.Title) != MaxTitleLength {
		t.Fatalf("expected title truncated to %d, got %d", MaxTitleLength, runeLen(doc.Title))
	}

	doc = AssembleDocument(nil, domain.DocumentMetadata{})
	if doc.Title != "" || doc.FullText != "" || doc.TotalPages != 0 {
		t.Fatalf("expected empty document, got %+v", doc)
	}
}
