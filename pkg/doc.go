// Package pkg provides the core libraries for the Gridboard layout engine.
//
// # Overview
//
// Gridboard arranges dashboard panels on a snap-to-grid canvas: panels live
// on an integer grid, never overlap, and are pushed aside deterministically
// while one of them is dragged or resized. The pkg directory is organized
// into these areas:
//
//  1. [grid] - The placement engine (model, collision resolver, controller)
//  2. [registry] - Panel manifests and default placements
//  3. [store] - Layout persistence backends (memory, file, redis, mongo)
//  4. [render] - Debug visualization of resolver push cascades
//  5. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The typical data flow through Gridboard:
//
//	Panel Manifest (TOML) + Stored Snapshot
//	         |
//	    [registry] package (seed the model, snapshot wins)
//	         |
//	    [grid] package (drag/resize -> resolve -> commit)
//	         |
//	    [store] package (persist snapshot per tab)
//
// # Quick Start
//
// Seed a model and run a drag through the controller:
//
//	import (
//	    "context"
//	    "github.com/gridboard/gridboard/pkg/grid"
//	    "github.com/gridboard/gridboard/pkg/registry"
//	    "github.com/gridboard/gridboard/pkg/store"
//	)
//
//	// 1. Build the model from the manifest plus any saved layout
//	reg, _ := registry.LoadManifest("panels.toml")
//	st, _ := store.NewFileStore("")
//	snap, _ := st.Load(context.Background(), "main", nil)
//	model := grid.NewModel(grid.Dims{Cols: 12, CellWidth: 90, CellHeight: 90, Gap: 14})
//	_ = reg.Seed(model, snap)
//
//	// 2. Drive an interaction
//	ctrl := grid.NewController(model, grid.StaticDims{D: model.Dims()}, grid.ControllerConfig{
//	    Tab:   "main",
//	    Saver: st,
//	})
//	ctrl.PointerDown(grid.Pointer{X: 10, Y: 10}, "inventory", grid.OpDrag)
//	ctrl.PointerMove(grid.Pointer{X: 220, Y: 10})
//	_ = ctrl.PointerUp(context.Background(), grid.Pointer{X: 220, Y: 10})
//
// # Main Packages
//
// [grid] - The single-threaded placement engine. Model owns item geometry
// and enforces the bounds and no-overlap invariants; Resolve is the pure,
// deterministic push-down collision resolver; Controller is the drag/resize
// state machine with live previews and commit-then-save semantics.
//
// [registry] - Ordered, id-unique panel declarations with default geometry
// and size constraints, loadable from TOML manifests.
//
// [store] - Layout persistence keyed by tab id. Backends: memory (tests),
// file (CLI), redis and mongo (server deployments), null (disabled). The
// fallback-on-missing-or-corrupt contract and retry policy live here.
//
// [render/pushes] - Renders a resolution's push trail as a Graphviz graph
// for debugging degenerate layouts.
//
// [errors] - Structured errors with machine-readable codes, shared by the
// CLI and the HTTP API, plus panel/tab id validation.
//
// [observability] - Hook interfaces for instrumenting resolution and
// persistence without coupling the engine to a metrics backend.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/grid/...     # Engine only
//
// [grid]: https://pkg.go.dev/github.com/gridboard/gridboard/pkg/grid
// [registry]: https://pkg.go.dev/github.com/gridboard/gridboard/pkg/registry
// [store]: https://pkg.go.dev/github.com/gridboard/gridboard/pkg/store
// [render]: https://pkg.go.dev/github.com/gridboard/gridboard/pkg/render
// [render/pushes]: https://pkg.go.dev/github.com/gridboard/gridboard/pkg/render/pushes
// [errors]: https://pkg.go.dev/github.com/gridboard/gridboard/pkg/errors
// [observability]: https://pkg.go.dev/github.com/gridboard/gridboard/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/gridboard/gridboard/pkg/buildinfo
package pkg
