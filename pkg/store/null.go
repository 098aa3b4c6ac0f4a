package store

import (
	"context"

	"github.com/gridboard/gridboard/pkg/grid"
)

// NullStore discards every write and answers every load with the fallback.
// Useful for testing or when persistence should be disabled.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() *NullStore {
	return &NullStore{}
}

// Save does nothing.
func (s *NullStore) Save(ctx context.Context, tab string, snap grid.Snapshot) error {
	return nil
}

// Load always returns the fallback.
func (s *NullStore) Load(ctx context.Context, tab string, fallback grid.Snapshot) (grid.Snapshot, error) {
	return fallback, nil
}

// Delete does nothing.
func (s *NullStore) Delete(ctx context.Context, tab string) error {
	return nil
}

// Tabs returns no tabs.
func (s *NullStore) Tabs(ctx context.Context) ([]string, error) {
	return nil, nil
}

// Close does nothing.
func (s *NullStore) Close() error {
	return nil
}

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)
