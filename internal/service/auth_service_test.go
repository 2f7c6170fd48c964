package service

import (
	"errors"
	"testing"

	"pdf-smart-tools/internal/domain"
)

func TestAuthService_ValidateToken(t *testing.T) {
	client := NewMockSupabaseClient()
	logger := NewMockLogger()

	service := NewAuthService(client, logger)

	// Test valid token
	user, err := service.ValidateToken("valid-token")
	if err != nil {
		t.Fatalf("Expected no error for valid token, got %v", err)
	}

	if user.ID != "user-123" {
		t.Errorf("Expected user ID 'user-123', got '%s'", user.ID)
	}

	if user.Email != "test@example.com" {
		t.Errorf("Expected user email 'test@example.com', got '%s'", user.Email)
	}

	// Test invalid token
	_, err = service.ValidateToken("invalid-token")
	if err == nil {
		t.Fatal("Expected error for invalid token")
	}

	expectedError := "invalid token: invalid token"
	if err.Error() != expectedError {
		t.Errorf("Expected error message '%s', got '%s'", expectedError, err.Error())
	}

	// Test empty token
	_, err = service.ValidateToken("  ")
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for empty token, got %v", err)
	}
}

func TestAuthService_NoClient(t *testing.T) {
	service := NewAuthService(nil, NewMockLogger())

	_, err := service.ValidateToken("valid-token")
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("Expected ErrInvalidToken without client, got %v", err)
	}
}
