// Package store persists layout snapshots keyed by tab id.
//
// This package defines the persistence boundary of the placement engine,
// with implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - file: JSON files under the user config directory for CLI use
//   - redis: Redis-backed storage for production multi-instance deployments
//   - mongo: MongoDB-backed storage, one document per tab
//   - null: Discards writes; every load returns the fallback
//
// # Contract
//
// Load must return the caller's fallback unchanged when no data exists for
// the tab or the stored data fails to parse as a well-formed snapshot. Only
// genuine backend failures (network, I/O) are returned as errors. Save never
// rolls back the caller's in-memory state on failure; the engine commits
// first and surfaces persistence errors as-is.
//
// Retry policy belongs here, not in the engine: backends that talk to a
// network wrap transient failures with Retryable and use RetryWithBackoff.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/gridboard/gridboard/pkg/grid"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned by Delete when the tab does not exist and the
	// backend distinguishes that case.
	ErrNotFound = errors.New("tab not found")

	// ErrClosed is returned when operating on a closed store.
	ErrClosed = errors.New("store closed")
)

// Store is the interface for layout persistence backends.
type Store interface {
	// Save writes the snapshot for a tab, replacing any previous one.
	Save(ctx context.Context, tab string, snap grid.Snapshot) error

	// Load reads the snapshot for a tab. Returns fallback unchanged when
	// the tab has no stored data or the stored data is malformed.
	Load(ctx context.Context, tab string, fallback grid.Snapshot) (grid.Snapshot, error)

	// Delete removes the stored snapshot for a tab.
	Delete(ctx context.Context, tab string) error

	// Tabs lists the ids of all stored tabs.
	Tabs(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// RetryableError wraps an error to indicate it should trigger a retry.
type RetryableError struct{ Err error }

// Retryable wraps an error as a RetryableError.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error returns the error message of the wrapped error.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable checks if an error is wrapped with RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff retries fn up to 3 times with exponential backoff.
// Only errors wrapped with Retryable will trigger retries.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3
	delay := time.Second
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
