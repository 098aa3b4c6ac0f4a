package pushes

import (
	"strings"
	"testing"

	"github.com/gridboard/gridboard/pkg/grid"
)

func TestToDOT(t *testing.T) {
	res := grid.Resolve(
		grid.Rect{ID: "inventory", X: 2, Y: 0, W: 4, H: 3},
		[]grid.Rect{{ID: "news", X: 4, Y: 0, W: 4, H: 3}},
		0,
	)

	dot := ToDOT("inventory", res)

	for _, want := range []string{
		"digraph pushes {",
		`"inventory"`,
		`"news"`,
		`"inventory" -> "news"`,
		"pass 1: 0->3",
		"fillcolor=lightgrey", // placeholder highlight
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}

	// Node labels carry the resolved geometry.
	if !strings.Contains(dot, `(4,3) 4x3`) {
		t.Errorf("DOT output missing resolved geometry for news:\n%s", dot)
	}
}

func TestToDOTNoPushes(t *testing.T) {
	res := grid.Resolve(
		grid.Rect{ID: "a", X: 0, Y: 0, W: 2, H: 2},
		[]grid.Rect{{ID: "b", X: 6, Y: 0, W: 2, H: 2}},
		0,
	)

	dot := ToDOT("a", res)

	// Only the placeholder node appears; idle items stay out of the graph.
	if strings.Contains(dot, `"b"`) {
		t.Errorf("untouched item rendered:\n%s", dot)
	}
	if strings.Contains(dot, "->") {
		t.Errorf("edges present without pushes:\n%s", dot)
	}
}
