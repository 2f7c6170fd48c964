package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"pdf-smart-tools/internal/domain"
)

type usageTracker struct {
	repo   domain.UsageRepository
	logger domain.Logger
}

// NewUsageTracker creates a history sink writing usage_logs rows
func NewUsageTracker(repo domain.UsageRepository, logger domain.Logger) *usageTracker {
	return &usageTracker{repo: repo, logger: logger}
}

// Record stores a usage log for authenticated actors. Anonymous calls are
// skipped.
func (t *usageTracker) Record(ctx context.Context, toolName, fileName string) error {
	actor := domain.ActorFromContext(ctx)
	if !actor.Authenticated {
		t.logger.Debug("User not logged in, skipping usage tracking", "tool", toolName)
		return nil
	}

	if err := t.repo.Insert(ctx, actor.ID, toolName, fileName); err != nil {
		return fmt.Errorf("failed to track usage: %w", err)
	}
	return nil
}

// HistorySinks fans a record out to every sink. All sinks are called even
// when one fails; the failures are joined.
type HistorySinks []domain.HistorySink

func (s HistorySinks) Record(ctx context.Context, toolName, fileName string) error {
	var errs []error
	for _, sink := range s {
		if sink == nil {
			continue
		}
		if err := sink.Record(ctx, toolName, fileName); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}
