package service

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"pdf-smart-tools/internal/analyzer"
	"pdf-smart-tools/internal/domain"
	"pdf-smart-tools/pkg/errors"
)

// MaxKeyPointsLimit caps the key point count a client may request
const MaxKeyPointsLimit = 50

type toolService struct {
	extractor domain.DocumentExtractor
	history   domain.HistorySink
	logger    domain.Logger
	now       func() time.Time
}

// NewToolService creates the tool orchestrator. history may be nil.
func NewToolService(extractor domain.DocumentExtractor, history domain.HistorySink, logger domain.Logger) *toolService {
	return &toolService{
		extractor: extractor,
		history:   history,
		logger:    logger,
		now:       time.Now,
	}
}

// ExtractText returns the cleaned full text of the file
func (s *toolService) ExtractText(ctx context.Context, file io.Reader, filename string) (*domain.TextExtractResult, error) {
	doc, err := s.extract(ctx, file, filename)
	if err != nil {
		return nil, err
	}

	text := analyzer.CleanText(doc.FullText)
	s.record(ctx, domain.ToolTextExtract, filename)

	return &domain.TextExtractResult{
		Title:     titleOrFileName(doc, filename),
		Text:      text,
		PageCount: doc.TotalPages,
		WordCount: len(strings.Fields(text)),
	}, nil
}

// SmartSummary returns key points, headings and key statistics
func (s *toolService) SmartSummary(ctx context.Context, file io.Reader, filename string) (*domain.SmartSummaryResult, error) {
	doc, err := s.extract(ctx, file, filename)
	if err != nil {
		return nil, err
	}

	summary := analyzer.SmartSummary(doc)
	s.record(ctx, domain.ToolSmartSummary, filename)

	return &domain.SmartSummaryResult{
		SmartSummary: summary,
		Title:        titleOrFileName(doc, filename),
		PageCount:    doc.TotalPages,
	}, nil
}

// KeyPoints returns the top maxPoints sentences. Values outside
// 1..MaxKeyPointsLimit are clamped; zero selects the tool default.
func (s *toolService) KeyPoints(ctx context.Context, file io.Reader, filename string, maxPoints int) (*domain.KeyPointsResult, error) {
	doc, err := s.extract(ctx, file, filename)
	if err != nil {
		return nil, err
	}

	points := analyzer.ExtractKeyPoints(doc.FullText, ClampKeyPoints(maxPoints))
	s.record(ctx, domain.ToolKeyPoints, filename)

	return &domain.KeyPointsResult{
		Title:     titleOrFileName(doc, filename),
		KeyPoints: points,
		PageCount: doc.TotalPages,
	}, nil
}

// Search runs a keyword search over the file's lines
func (s *toolService) Search(ctx context.Context, file io.Reader, filename string, query string) (*domain.SmartSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.NewValidationError(domain.ErrEmptyQuery.Error())
	}

	doc, err := s.extract(ctx, file, filename)
	if err != nil {
		return nil, err
	}

	result := analyzer.Search(doc, query)
	s.record(ctx, domain.ToolSmartSearch, filename)

	return &domain.SmartSearchResult{
		SearchResult: result,
		Title:        titleOrFileName(doc, filename),
		Query:        query,
		QueryWords:   analyzer.QueryWords(query),
		PageCount:    doc.TotalPages,
	}, nil
}

// SuggestFileNames proposes file names derived from the content
func (s *toolService) SuggestFileNames(ctx context.Context, file io.Reader, filename string) (*domain.FileNameResult, error) {
	doc, err := s.extract(ctx, file, filename)
	if err != nil {
		return nil, err
	}

	suggestions := analyzer.SuggestFileNames(doc, s.now())
	s.record(ctx, domain.ToolFileNameSuggest, filename)

	return &domain.FileNameResult{Suggestions: suggestions}, nil
}

func (s *toolService) extract(ctx context.Context, file io.Reader, filename string) (*domain.Document, error) {
	if file == nil {
		return nil, errors.NewValidationError("file is required")
	}
	return s.extractor.Extract(ctx, file, filename)
}

// record never fails the tool; sink errors are only logged.
func (s *toolService) record(ctx context.Context, toolName, filename string) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(ctx, toolName, filename); err != nil {
		s.logger.Error("Failed to record tool usage", err, "tool", toolName, "file", filename)
	}
}

// ClampKeyPoints maps a requested key point count into the accepted range
func ClampKeyPoints(n int) int {
	switch {
	case n == 0:
		return analyzer.ToolKeyPoints
	case n < 1:
		return 1
	case n > MaxKeyPointsLimit:
		return MaxKeyPointsLimit
	}
	return n
}

func titleOrFileName(doc *domain.Document, filename string) string {
	if doc.Title != "" || filename == "" {
		return doc.Title
	}
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
