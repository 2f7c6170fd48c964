package repository

import (
	"sync"

	"pdf-smart-tools/internal/domain"
)

// MemoryHistoryRepository keeps per-owner history lists in memory.
// Lists are stored newest first.
type MemoryHistoryRepository struct {
	mu    sync.RWMutex
	items map[string][]domain.HistoryItem
}

// NewMemoryHistoryRepository creates an empty in-memory history repository
func NewMemoryHistoryRepository() *MemoryHistoryRepository {
	return &MemoryHistoryRepository{
		items: make(map[string][]domain.HistoryItem),
	}
}

// Prepend inserts item at the front of the owner's list and drops anything
// beyond limit. A non-positive limit keeps every item.
func (r *MemoryHistoryRepository) Prepend(ownerID string, item domain.HistoryItem, limit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.items[ownerID]
	next := make([]domain.HistoryItem, 0, len(current)+1)
	next = append(next, item)
	next = append(next, current...)
	if limit > 0 && len(next) > limit {
		next = next[:limit]
	}
	r.items[ownerID] = next
	return nil
}

// List returns a copy of the owner's history
func (r *MemoryHistoryRepository) List(ownerID string) ([]domain.HistoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	current := r.items[ownerID]
	out := make([]domain.HistoryItem, len(current))
	copy(out, current)
	return out, nil
}

func (r *MemoryHistoryRepository) Remove(ownerID string, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.items[ownerID]
	for i, item := range current {
		if item.ID == itemID {
			next := make([]domain.HistoryItem, 0, len(current)-1)
			next = append(next, current[:i]...)
			next = append(next, current[i+1:]...)
			r.items[ownerID] = next
			return nil
		}
	}
	return domain.ErrHistoryItemNotFound
}

func (r *MemoryHistoryRepository) Clear(ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, ownerID)
	return nil
}
