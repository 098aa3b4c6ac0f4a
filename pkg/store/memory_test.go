package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/gridboard/gridboard/pkg/grid"
)

func sampleSnapshot() grid.Snapshot {
	return grid.Snapshot{
		{ID: "inventory", X: 0, Y: 0, W: 4, H: 3},
		{ID: "news", X: 4, Y: 0, W: 4, H: 3, Hidden: true},
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	snap := sampleSnapshot()
	if err := s.Save(ctx, "main", snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load(ctx, "main", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !got.Equal(snap) {
		t.Errorf("Load() = %+v, want %+v", got, snap)
	}
}

func TestMemoryStoreLoadFallback(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	fallback := sampleSnapshot()
	got, err := s.Load(ctx, "absent", fallback)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !got.Equal(fallback) {
		t.Errorf("Load() = %+v, want fallback", got)
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	snap := sampleSnapshot()
	if err := s.Save(ctx, "main", snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Mutating the caller's slice after Save must not affect the store, and
	// mutating a loaded snapshot must not affect later loads.
	snap[0].X = 99
	loaded, _ := s.Load(ctx, "main", nil)
	if loaded[0].X == 99 {
		t.Error("Save() kept a reference to the caller's snapshot")
	}

	loaded[0].Y = 99
	again, _ := s.Load(ctx, "main", nil)
	if again[0].Y == 99 {
		t.Error("Load() returned a shared snapshot")
	}
}

func TestMemoryStoreDeleteAndTabs(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, tab := range []string{"zeta", "alpha", "main"} {
		if err := s.Save(ctx, tab, sampleSnapshot()); err != nil {
			t.Fatalf("Save(%s) error = %v", tab, err)
		}
	}

	tabs, err := s.Tabs(ctx)
	if err != nil {
		t.Fatalf("Tabs() error = %v", err)
	}
	want := []string{"alpha", "main", "zeta"}
	if !reflect.DeepEqual(tabs, want) {
		t.Errorf("Tabs() = %v, want %v", tabs, want)
	}

	if err := s.Delete(ctx, "alpha"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	got, _ := s.Load(ctx, "alpha", nil)
	if got != nil {
		t.Errorf("Load() after Delete = %+v, want fallback", got)
	}
}
