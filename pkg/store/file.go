package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gridboard/gridboard/pkg/grid"
	"github.com/gridboard/gridboard/pkg/observability"
)

// FileStore is a file-based layout store for CLI applications.
// Each tab is stored as one JSON file in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based layout store.
// If baseDir is empty, defaults to ~/.config/gridboard/layouts/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "gridboard", "layouts")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create layout dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// tabPath maps a tab id to its file. Tab ids come from user input and the
// HTTP API, so they are escaped before touching the filesystem.
func (s *FileStore) tabPath(tab string) string {
	return filepath.Join(s.baseDir, url.PathEscape(tab)+".json")
}

// Save writes the snapshot for a tab.
func (s *FileStore) Save(ctx context.Context, tab string, snap grid.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		observability.Store().OnError(ctx, "file", "save", tab, err)
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(s.tabPath(tab), data, 0600); err != nil {
		observability.Store().OnError(ctx, "file", "save", tab, err)
		return fmt.Errorf("write snapshot file: %w", err)
	}

	observability.Store().OnSave(ctx, "file", tab, len(snap), time.Since(start))
	return nil
}

// Load reads the snapshot for a tab, returning fallback when the file does
// not exist or does not parse as a snapshot array.
func (s *FileStore) Load(ctx context.Context, tab string, fallback grid.Snapshot) (grid.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	start := time.Now()

	data, err := os.ReadFile(s.tabPath(tab))
	if err != nil {
		if os.IsNotExist(err) {
			observability.Store().OnLoad(ctx, "file", tab, true, time.Since(start))
			return fallback, nil
		}
		observability.Store().OnError(ctx, "file", "load", tab, err)
		return fallback, fmt.Errorf("read snapshot file: %w", err)
	}

	var snap grid.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// Corrupt file: contract says fall back, not fail.
		observability.Store().OnLoad(ctx, "file", tab, true, time.Since(start))
		return fallback, nil
	}

	observability.Store().OnLoad(ctx, "file", tab, false, time.Since(start))
	return snap, nil
}

// Delete removes the snapshot file for a tab.
func (s *FileStore) Delete(ctx context.Context, tab string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.tabPath(tab)); err != nil && !os.IsNotExist(err) {
		observability.Store().OnError(ctx, "file", "delete", tab, err)
		return fmt.Errorf("remove snapshot file: %w", err)
	}
	return nil
}

// Tabs lists all stored tab ids.
func (s *FileStore) Tabs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read layout dir: %w", err)
	}

	var tabs []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		tab, err := url.PathUnescape(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue
		}
		tabs = append(tabs, tab)
	}
	return tabs, nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

// Path returns the base directory for layout files.
func (s *FileStore) Path() string {
	return s.baseDir
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
