// Package render provides debug visualization for the layout engine.
//
// # Overview
//
// The engine itself never draws anything; rendering lives in the UI layer.
// This package exists for debugging: it turns resolver output into diagrams
// a developer can look at when a layout misbehaves.
//
// # Push Cascades
//
// The [pushes] subpackage renders the displacement trail of one resolution
// run as a directed graph using Graphviz. Each node is a panel labeled with
// its resolved rectangle; each edge points from the blocker to the panel it
// displaced.
//
//	res := grid.Resolve(placeholder, others, 0)
//	dot := pushes.ToDOT("inventory", res)
//	svg, err := pushes.RenderSVG(dot)
//
// [pushes]: github.com/gridboard/gridboard/pkg/render/pushes
package render
