package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"pdf-smart-tools/internal/domain"
	"pdf-smart-tools/pkg/errors"

	"github.com/google/uuid"
)

// DefaultHistoryLimit is the number of history items kept per actor
const DefaultHistoryLimit = 20

type historyService struct {
	repo   domain.HistoryRepository
	limit  int
	logger domain.Logger
	now    func() time.Time
	newID  func() string
}

// NewHistoryService creates a history service keeping at most limit items
// per actor. A non-positive limit selects DefaultHistoryLimit.
func NewHistoryService(repo domain.HistoryRepository, limit int, logger domain.Logger) *historyService {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &historyService{
		repo:   repo,
		limit:  limit,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Record prepends a history item for the actor in ctx
func (s *historyService) Record(ctx context.Context, toolName, fileName string) error {
	actor := domain.ActorFromContext(ctx)
	item := domain.HistoryItem{
		ID:        s.newID(),
		ToolName:  toolName,
		FileName:  fileName,
		Timestamp: s.now().UnixMilli(),
	}

	if err := s.repo.Prepend(actor.ID, item, s.limit); err != nil {
		return fmt.Errorf("failed to save history item: %w", err)
	}
	s.logger.Debug("History item recorded", "actor", actor.ID, "tool", toolName)
	return nil
}

// List returns the actor's history, newest first
func (s *historyService) List(ctx context.Context) ([]domain.HistoryItem, error) {
	items, err := s.repo.List(domain.ActorFromContext(ctx).ID)
	if err != nil {
		return nil, errors.NewInternalError("failed to list history", err)
	}
	if items == nil {
		items = []domain.HistoryItem{}
	}
	return items, nil
}

// Remove deletes a single history item of the actor
func (s *historyService) Remove(ctx context.Context, itemID string) error {
	if itemID == "" {
		return errors.NewValidationError("history item id is required")
	}

	err := s.repo.Remove(domain.ActorFromContext(ctx).ID, itemID)
	if stderrors.Is(err, domain.ErrHistoryItemNotFound) {
		return errors.NewNotFoundError(domain.ErrHistoryItemNotFound.Error())
	}
	if err != nil {
		return errors.NewInternalError("failed to remove history item", err)
	}
	return nil
}

// Clear deletes the actor's whole history
func (s *historyService) Clear(ctx context.Context) error {
	if err := s.repo.Clear(domain.ActorFromContext(ctx).ID); err != nil {
		return errors.NewInternalError("failed to clear history", err)
	}
	return nil
}
