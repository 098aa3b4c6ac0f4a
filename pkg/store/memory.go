package store

import (
	"context"
	"sort"
	"sync"

	"github.com/gridboard/gridboard/pkg/grid"
)

// MemoryStore keeps snapshots in process memory. Useful for tests and for
// running the server without a persistence backend.
type MemoryStore struct {
	mu   sync.RWMutex
	tabs map[string]grid.Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tabs: make(map[string]grid.Snapshot)}
}

// Save stores a copy of the snapshot.
func (s *MemoryStore) Save(ctx context.Context, tab string, snap grid.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabs[tab] = snap.Clone()
	return nil
}

// Load returns a copy of the stored snapshot, or fallback if absent.
func (s *MemoryStore) Load(ctx context.Context, tab string, fallback grid.Snapshot) (grid.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.tabs[tab]
	if !ok {
		return fallback, nil
	}
	return snap.Clone(), nil
}

// Delete removes the stored snapshot for a tab.
func (s *MemoryStore) Delete(ctx context.Context, tab string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tabs, tab)
	return nil
}

// Tabs lists stored tab ids in sorted order.
func (s *MemoryStore) Tabs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.tabs))
	for tab := range s.tabs {
		out = append(out, tab)
	}
	sort.Strings(out)
	return out, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
