package repository

import (
	"errors"
	"fmt"
	"sync"

	"pdf-smart-tools/internal/domain"

	"github.com/supabase-community/supabase-go"
)

var errSupabaseNotInitialized = errors.New("supabase client not initialized")

// SupabaseClient implements the domain.SupabaseClient interface
type SupabaseClient struct {
	client *supabase.Client
	config domain.Config
	logger domain.Logger

	serviceOnce   sync.Once
	serviceClient *supabase.Client
	serviceErr    error
}

// NewSupabaseClient creates a new Supabase client instance
func NewSupabaseClient(config domain.Config, logger domain.Logger) domain.SupabaseClient {
	return &SupabaseClient{
		config: config,
		logger: logger,
	}
}

// Initialize establishes a connection to Supabase
func (s *SupabaseClient) Initialize() error {
	supabaseURL := s.config.GetSupabaseURL()
	supabaseKey := s.config.GetSupabaseKey()

	if supabaseURL == "" || supabaseKey == "" {
		return fmt.Errorf("supabase URL and key must be provided")
	}

	client, err := supabase.NewClient(supabaseURL, supabaseKey, &supabase.ClientOptions{})
	if err != nil {
		return fmt.Errorf("failed to create Supabase client: %w", err)
	}

	s.client = client
	s.logger.Info("Supabase client initialized successfully", "url", supabaseURL)
	return nil
}

// ServiceClient lazily creates the service role client
func (s *SupabaseClient) ServiceClient() (*supabase.Client, error) {
	s.serviceOnce.Do(func() {
		supabaseURL := s.config.GetSupabaseURL()
		serviceRoleKey := s.config.GetSupabaseServiceRoleKey()
		if supabaseURL == "" || serviceRoleKey == "" {
			s.serviceErr = fmt.Errorf("missing SUPABASE_URL or SUPABASE_SERVICE_ROLE_KEY")
			return
		}

		s.serviceClient, s.serviceErr = supabase.NewClient(supabaseURL, serviceRoleKey, &supabase.ClientOptions{})
	})

	return s.serviceClient, s.serviceErr
}

// ValidateToken validates a Supabase JWT token and returns user info
func (s *SupabaseClient) ValidateToken(token string) (*domain.SupabaseUser, error) {
	if s.client == nil {
		return nil, errSupabaseNotInitialized
	}

	// Passing "Authorization" via client headers does not affect GoTrue requests.
	user, err := s.client.Auth.WithToken(token).GetUser()
	if err != nil {
		s.logger.Debug("Failed to validate token with Supabase", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	if user == nil {
		return nil, fmt.Errorf("%w: user not found", domain.ErrInvalidToken)
	}

	return &domain.SupabaseUser{
		ID:           user.ID.String(),
		Email:        user.Email,
		UserMetadata: user.UserMetadata,
		CreatedAt:    user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:    user.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}
