package analyzer

import (
	"reflect"
	"testing"
)

func TestExtractStatistics(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			// Tests that repeated statistics are reported once, in order of first occurrence
			name: "Distinct matches",
			text: "Sales rose 12% and profit hit $3 million twice: 12% and $3 million",
			want: []string{"12%", "3 million"},
		},
		{
			// Tests decimal numbers and the dollar suffix forms
			name: "Decimals and currency words",
			text: "Revenue was 3.5 billion, costs 40 dollars and a fee of 1 dollar or 7$.",
			want: []string{"3.5 billion", "40 dollars", "1 dollar", "7$"},
		},
		{
			// Tests that matching is case-insensitive but the original casing is kept
			name: "Casing preserved",
			text: "About 5 Million users and 5 million sessions, 20 PERCENT growth",
			want: []string{"5 Million", "5 million", "20 PERCENT"},
		},
		{
			// Tests that at most five statistics are returned
			name: "Capped at five",
			text: "1% 2% 3% 4% 5% 6% 7%",
			want: []string{"1%", "2%", "3%", "4%", "5%"},
		},
		{
			// Tests that text without statistics yields an empty list
			name: "No statistics",
			text: "Nothing numeric to see here.",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractStatistics(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ExtractStatistics(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}
