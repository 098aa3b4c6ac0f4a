// Package pushes renders the resolver's push cascade as a node-link diagram.
//
// Every resolution produces a trail of displacements: which blocker pushed
// which item, from which row to which row, during which pass. Rendering that
// trail as a graph makes degenerate inputs (long cascades, near-cyclic push
// chains) visible at a glance. This is a debug aid, not part of the engine.
package pushes

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/gridboard/gridboard/pkg/grid"
)

// ToDOT converts a resolution result to Graphviz DOT format. Nodes are the
// placeholder and every item that appears in the push trail, labeled with
// their resolved rectangle; edges point from blocker to displaced item and
// are labeled "pass N: fromY->toY".
func ToDOT(placeholder string, res grid.Result) string {
	var buf bytes.Buffer
	buf.WriteString("digraph pushes {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, id := range nodeIDs(placeholder, res) {
		attrs := []string{fmt.Sprintf("label=%q", nodeLabel(id, res))}
		if id == placeholder {
			attrs = append(attrs, "style=\"rounded,filled,bold\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, p := range res.Pushes {
		fmt.Fprintf(&buf, "  %q -> %q [label=\"pass %d: %d->%d\"];\n", p.Blocker, p.Item, p.Pass, p.FromY, p.ToY)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeIDs returns the placeholder plus every id in the push trail, in first
// appearance order.
func nodeIDs(placeholder string, res grid.Result) []string {
	ids := []string{placeholder}
	seen := map[string]bool{placeholder: true}
	for _, p := range res.Pushes {
		for _, id := range []string{p.Blocker, p.Item} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func nodeLabel(id string, res grid.Result) string {
	if r, ok := res.Rect(id); ok {
		return fmt.Sprintf("%s\n(%d,%d) %dx%d", id, r.X, r.Y, r.W, r.H)
	}
	return id
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
