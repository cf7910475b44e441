package lookup

import (
	"context"
	"log/slog"
	"sync"

	"stockroom/inventory"
)

// Store is the owned, injectable cache of the four lookup lists.
// It is constructed once in main and handed to every handler that
// needs names; nothing reads it ambiently.
type Store struct {
	backend inventory.Backend

	mu     sync.RWMutex
	lists  inventory.Lookups
	loaded bool
}

func NewStore(backend inventory.Backend) *Store {
	return &Store{backend: backend, lists: inventory.Lookups{}}
}

// Refresh loads all four categories from the backend. Without force it
// is a no-op once a load has succeeded. A failed fetch leaves the
// previous cache intact; no category is ever replaced in isolation.
func (s *Store) Refresh(ctx context.Context, force bool) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded && !force {
		return nil
	}

	lists, err := s.backend.Lookups(ctx)
	if err != nil {
		slog.Error("lookup refresh failed", slog.Any("err", err))
		return err
	}

	s.mu.Lock()
	s.lists = lists
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// Get returns the cached entries of one category in load order.
func (s *Store) Get(category inventory.Category) []inventory.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lists[category]
}

// Invalidate marks the cache stale after a master-data mutation so the
// next Refresh hits the backend again.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
}
