// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about layout resolution and persistence operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnResolveStart(ctx, tab, itemCount)
//	// ... resolve ...
//	observability.Layout().OnResolveComplete(ctx, tab, passes, converged, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from the placement engine.
type LayoutHooks interface {
	// Resolution events
	OnResolveStart(ctx context.Context, tab string, itemCount int)
	OnResolveComplete(ctx context.Context, tab string, passes int, converged bool, duration time.Duration)

	// OnBudgetExhausted records a resolution that hit the iteration cap
	// without stabilizing. Non-fatal: the best-effort state was applied.
	OnBudgetExhausted(ctx context.Context, tab string, budget int)

	// OnCommit records a committed drag or resize operation.
	OnCommit(ctx context.Context, tab, op, itemID string)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from layout persistence backends.
type StoreHooks interface {
	// OnSave records a snapshot write.
	OnSave(ctx context.Context, backend, tab string, items int, duration time.Duration)

	// OnLoad records a snapshot read. fallback is true when the stored data
	// was missing or malformed and the caller's fallback was returned.
	OnLoad(ctx context.Context, backend, tab string, fallback bool, duration time.Duration)

	// OnError records a failed store operation.
	OnError(ctx context.Context, backend, op, tab string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnResolveStart(context.Context, string, int)                          {}
func (NoopLayoutHooks) OnResolveComplete(context.Context, string, int, bool, time.Duration)  {}
func (NoopLayoutHooks) OnBudgetExhausted(context.Context, string, int)                       {}
func (NoopLayoutHooks) OnCommit(context.Context, string, string, string)                     {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnSave(context.Context, string, string, int, time.Duration)  {}
func (NoopStoreHooks) OnLoad(context.Context, string, string, bool, time.Duration) {}
func (NoopStoreHooks) OnError(context.Context, string, string, string, error)      {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout operations.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	storeHooks = NoopStoreHooks{}
}
