package service

import (
	"context"
	"errors"
	"io"
	"sync"

	"pdf-smart-tools/internal/domain"

	"github.com/supabase-community/supabase-go"
)

type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: []string{},
	}
}

func (m *MockLogger) add(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.add("INFO: " + msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	if err != nil {
		msg += " - " + err.Error()
	}
	m.add("ERROR: " + msg)
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.add("DEBUG: " + msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.add("WARN: " + msg)
}

func (m *MockLogger) count(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, msg := range m.messages {
		if len(msg) >= len(prefix) && msg[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// MockSupabaseClient for testing
type MockSupabaseClient struct {
	users map[string]*domain.SupabaseUser
}

func NewMockSupabaseClient() *MockSupabaseClient {
	return &MockSupabaseClient{
		users: map[string]*domain.SupabaseUser{
			"valid-token": {ID: "user-123", Email: "test@example.com"},
		},
	}
}

func (m *MockSupabaseClient) Initialize() error {
	return nil
}

func (m *MockSupabaseClient) ValidateToken(token string) (*domain.SupabaseUser, error) {
	if user, ok := m.users[token]; ok {
		return user, nil
	}
	if token == "invalid-token" {
		return nil, errors.New("invalid token")
	}
	return nil, errors.New("token validation failed")
}

func (m *MockSupabaseClient) ServiceClient() (*supabase.Client, error) {
	return nil, errors.New("not configured")
}

// fakeExtractor returns a fixed document and counts calls
type fakeExtractor struct {
	doc   *domain.Document
	err   error
	calls int
}

func (f *fakeExtractor) Extract(ctx context.Context, file io.Reader, filename string) (*domain.Document, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

type recordedCall struct {
	actor    string
	toolName string
	fileName string
}

// recordingSink remembers every Record call
type recordingSink struct {
	calls []recordedCall
	err   error
}

func (s *recordingSink) Record(ctx context.Context, toolName, fileName string) error {
	s.calls = append(s.calls, recordedCall{
		actor:    domain.ActorFromContext(ctx).ID,
		toolName: toolName,
		fileName: fileName,
	})
	return s.err
}

// fakeUsageRepository is an in-memory domain.UsageRepository
type fakeUsageRepository struct {
	inserted  []recordedCall
	toolNames []string
	recent    []domain.UsageLog
	profiles  []domain.Profile
	err       error
}

func (f *fakeUsageRepository) Insert(ctx context.Context, userID, toolName, fileName string) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, recordedCall{actor: userID, toolName: toolName, fileName: fileName})
	return nil
}

func (f *fakeUsageRepository) ListToolNames(ctx context.Context) ([]string, error) {
	return f.toolNames, f.err
}

func (f *fakeUsageRepository) Recent(ctx context.Context, limit int) ([]domain.UsageLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeUsageRepository) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	return f.profiles, f.err
}

// fakeBackend is a scripted domain.PageTextBackend
type fakeBackend struct {
	name  string
	pages [][]string
	meta  domain.DocumentMetadata
	err   error
	calls int
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) ExtractPages(ctx context.Context, pdfBytes []byte) ([][]string, domain.DocumentMetadata, error) {
	f.calls++
	if err := ctx.Err(); err != nil {
		return nil, domain.DocumentMetadata{}, err
	}
	return f.pages, f.meta, f.err
}

// fakeRecognizer is a scripted domain.ImageRecognizer
type fakeRecognizer struct {
	text string
	err  error
}

func (f *fakeRecognizer) RecognizeImage(imageData []byte) (string, error) {
	return f.text, f.err
}
