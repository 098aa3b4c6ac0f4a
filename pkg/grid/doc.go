// Package grid implements the placement engine behind the dashboard canvas.
//
// Panels are rectangular items on an integer grid. The package guarantees
// that no two visible items ever overlap and computes deterministic
// repositioning while an item is dragged or resized.
//
// # Architecture
//
// The package is built from three pieces:
//
//   - Model: the single source of truth for item geometry. It enforces
//     bounds and size constraints on every write and is the only owner of
//     mutable item state.
//   - Resolve: a pure collision resolver. Given a placeholder rectangle and
//     the rectangles of all other visible items, it produces a new
//     non-overlapping arrangement by pushing conflicting items downward.
//   - Controller: a state machine that orchestrates drag and resize
//     interactions. It translates pixel coordinates to grid cells, previews
//     resolver output without committing, and commits plus persists on
//     release.
//
// # Usage
//
// Build a model from panel defaults, then drive it through a controller:
//
//	model := grid.NewModel(grid.Dims{Cols: 12, CellWidth: 90, CellHeight: 90, Gap: 14})
//	item, err := model.AddItem(grid.ItemConfig{ID: "inventory", W: 4, H: 3, AutoPlace: true})
//	if err != nil {
//	    return err
//	}
//
//	ctrl := grid.NewController(model, provider, grid.ControllerConfig{Tab: "main", Saver: store})
//	ctrl.PointerDown(grid.Pointer{X: 120, Y: 40}, item.ID, grid.OpDrag)
//	ctrl.PointerMove(grid.Pointer{X: 340, Y: 40})
//	err = ctrl.PointerUp(ctx, grid.Pointer{X: 340, Y: 40})
//
// All operations are synchronous and single-threaded: the controller is meant
// to be driven from a UI event loop and never spawns goroutines.
package grid
