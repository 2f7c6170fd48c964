package handler

import (
	"context"
	"io"

	"pdf-smart-tools/internal/domain"
)

type mockAuthService struct {
	user      *domain.SupabaseUser
	err       error
	lastToken string
}

func (m *mockAuthService) ValidateToken(token string) (*domain.SupabaseUser, error) {
	m.lastToken = token
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

// mockToolService records the arguments of the last call
type mockToolService struct {
	err       error
	content   string
	filename  string
	query     string
	maxPoints int
	actor     domain.Actor
}

func (m *mockToolService) capture(ctx context.Context, file io.Reader, filename string) error {
	b, _ := io.ReadAll(file)
	m.content = string(b)
	m.filename = filename
	m.actor = domain.ActorFromContext(ctx)
	return m.err
}

func (m *mockToolService) ExtractText(ctx context.Context, file io.Reader, filename string) (*domain.TextExtractResult, error) {
	if err := m.capture(ctx, file, filename); err != nil {
		return nil, err
	}
	return &domain.TextExtractResult{Title: "T", Text: m.content, PageCount: 1, WordCount: 1}, nil
}

func (m *mockToolService) SmartSummary(ctx context.Context, file io.Reader, filename string) (*domain.SmartSummaryResult, error) {
	if err := m.capture(ctx, file, filename); err != nil {
		return nil, err
	}
	return &domain.SmartSummaryResult{SmartSummary: domain.SmartSummary{Summary: []string{"s"}, Headings: []string{}, KeyStats: []string{}}}, nil
}

func (m *mockToolService) KeyPoints(ctx context.Context, file io.Reader, filename string, maxPoints int) (*domain.KeyPointsResult, error) {
	m.maxPoints = maxPoints
	if err := m.capture(ctx, file, filename); err != nil {
		return nil, err
	}
	return &domain.KeyPointsResult{KeyPoints: []string{"k"}}, nil
}

func (m *mockToolService) Search(ctx context.Context, file io.Reader, filename string, query string) (*domain.SmartSearchResult, error) {
	m.query = query
	if err := m.capture(ctx, file, filename); err != nil {
		return nil, err
	}
	return &domain.SmartSearchResult{Query: query, SearchResult: domain.SearchResult{Matches: []domain.SearchMatch{}}}, nil
}

func (m *mockToolService) SuggestFileNames(ctx context.Context, file io.Reader, filename string) (*domain.FileNameResult, error) {
	if err := m.capture(ctx, file, filename); err != nil {
		return nil, err
	}
	return &domain.FileNameResult{Suggestions: []string{"Report"}}, nil
}

// mockHistoryService keeps items per actor
type mockHistoryService struct {
	items   map[string][]domain.HistoryItem
	err     error
	removed string
}

func newMockHistoryService() *mockHistoryService {
	return &mockHistoryService{items: map[string][]domain.HistoryItem{}}
}

func (m *mockHistoryService) Record(ctx context.Context, toolName, fileName string) error {
	id := domain.ActorFromContext(ctx).ID
	m.items[id] = append([]domain.HistoryItem{{ID: fileName, ToolName: toolName, FileName: fileName}}, m.items[id]...)
	return nil
}

func (m *mockHistoryService) List(ctx context.Context) ([]domain.HistoryItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	items := m.items[domain.ActorFromContext(ctx).ID]
	if items == nil {
		items = []domain.HistoryItem{}
	}
	return items, nil
}

func (m *mockHistoryService) Remove(ctx context.Context, itemID string) error {
	m.removed = itemID
	return m.err
}

func (m *mockHistoryService) Clear(ctx context.Context) error {
	if m.err != nil {
		return m.err
	}
	delete(m.items, domain.ActorFromContext(ctx).ID)
	return nil
}

type mockAdminService struct {
	dashboard *domain.AdminDashboard
	err       error
	calls     int
}

func (m *mockAdminService) Dashboard(ctx context.Context) (*domain.AdminDashboard, error) {
	m.calls++
	return m.dashboard, m.err
}
