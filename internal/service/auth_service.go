package service

import (
	"fmt"
	"strings"

	"pdf-smart-tools/internal/domain"
)

type authService struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

func NewAuthService(
	supabaseClient domain.SupabaseClient,
	logger domain.Logger,
) *authService {
	return &authService{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// ValidateToken validates a bearer token against Supabase Auth
func (s *authService) ValidateToken(token string) (*domain.SupabaseUser, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrInvalidToken
	}
	if s.supabaseClient == nil {
		return nil, fmt.Errorf("%w: authentication is not configured", domain.ErrInvalidToken)
	}

	user, err := s.supabaseClient.ValidateToken(token)
	if err != nil {
		s.logger.Warn("Failed to validate token with Supabase", "error", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return user, nil
}
