package domain

import (
	"context"
	"io"
)

// SearchMatch is a single line hit returned by keyword search.
type SearchMatch struct {
	PageNumber int    `json:"page_number"`
	Context    string `json:"context"`
	Highlight  string `json:"highlight"`
}

// SearchResult holds the first matches and the count before truncation.
type SearchResult struct {
	Matches      []SearchMatch `json:"matches"`
	TotalMatches int           `json:"total_matches"`
}

// SmartSummary is the heuristic overview of a document.
type SmartSummary struct {
	Summary  []string `json:"summary"`
	Headings []string `json:"headings"`
	KeyStats []string `json:"key_stats"`
}

// Tool names as shown in history and usage logs.
const (
	ToolTextExtract     = "Text Extract"
	ToolSmartSummary    = "Smart Summary"
	ToolKeyPoints       = "Key Points"
	ToolSmartSearch     = "Smart Search"
	ToolFileNameSuggest = "File Name Suggest"
)

// TextExtractResult is returned by the text extraction tool.
type TextExtractResult struct {
	Title     string `json:"title"`
	Text      string `json:"text"`
	PageCount int    `json:"page_count"`
	WordCount int    `json:"word_count"`
}

// SmartSummaryResult is returned by the smart summary tool.
type SmartSummaryResult struct {
	SmartSummary
	Title     string `json:"title"`
	PageCount int    `json:"page_count"`
}

// KeyPointsResult is returned by the key points tool.
type KeyPointsResult struct {
	Title     string   `json:"title"`
	KeyPoints []string `json:"key_points"`
	PageCount int      `json:"page_count"`
}

// SmartSearchResult is returned by the search tool.
type SmartSearchResult struct {
	SearchResult
	Title      string   `json:"title"`
	Query      string   `json:"query"`
	QueryWords []string `json:"query_words"`
	PageCount  int      `json:"page_count"`
}

// FileNameResult is returned by the file name suggestion tool.
type FileNameResult struct {
	Suggestions []string `json:"suggestions"`
}

// ToolService runs the analysis tools against an uploaded file.
type ToolService interface {
	ExtractText(ctx context.Context, file io.Reader, filename string) (*TextExtractResult, error)
	SmartSummary(ctx context.Context, file io.Reader, filename string) (*SmartSummaryResult, error)
	KeyPoints(ctx context.Context, file io.Reader, filename string, maxPoints int) (*KeyPointsResult, error)
	Search(ctx context.Context, file io.Reader, filename string, query string) (*SmartSearchResult, error)
	SuggestFileNames(ctx context.Context, file io.Reader, filename string) (*FileNameResult, error)
}
