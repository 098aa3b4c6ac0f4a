package grid

import "sort"

// DefaultBudget is the iteration cap for collision resolution. A budget this
// size is never reached by well-formed layouts; hitting it signals a
// pathological input such as a cyclic push chain.
const DefaultBudget = 500

// Push records one displacement performed by the resolver: item was moved
// below blocker during the given pass. The push trail is used by the debug
// push-graph renderer and by tests.
type Push struct {
	Blocker string
	Item    string
	FromY   int
	ToY     int
	Pass    int
}

// Result is the outcome of a resolution run.
type Result struct {
	// Rects holds the resolved rectangles for the placeholder and all other
	// items. The placeholder is always present and never moved.
	Rects []Rect

	// Converged is false when the iteration budget was exhausted before the
	// arrangement stabilized. The rects then hold the best-effort last state.
	Converged bool

	// Passes is the number of sweep passes performed.
	Passes int

	// Pushes is the ordered trail of displacements.
	Pushes []Push
}

// Rect returns the resolved rectangle for the given id.
func (r Result) Rect(id string) (Rect, bool) {
	for _, rc := range r.Rects {
		if rc.ID == id {
			return rc, true
		}
	}
	return Rect{}, false
}

// Resolve computes a non-overlapping arrangement for the placeholder and all
// other visible items. The placeholder is a fixed obstacle; conflicting items
// are pushed straight down below whichever blocker they overlap.
//
// The algorithm is deterministic and greedy, not globally optimal. Each pass
// sorts the blockers by (y, x) ascending so pushes cascade downward
// consistently; the sort is stable, so items at identical positions keep
// their relative order and the leftmost is processed first. Resolution is
// idempotent on an already-valid configuration.
//
// A budget <= 0 falls back to DefaultBudget. Inputs are cloned; the caller's
// slices are never mutated.
func Resolve(placeholder Rect, others []Rect, budget int) Result {
	if budget <= 0 {
		budget = DefaultBudget
	}

	blockers := make([]Rect, 0, len(others)+1)
	blockers = append(blockers, placeholder)
	blockers = append(blockers, others...)

	res := Result{}
	for res.Passes < budget {
		res.Passes++

		sort.SliceStable(blockers, func(i, j int) bool {
			if blockers[i].Y != blockers[j].Y {
				return blockers[i].Y < blockers[j].Y
			}
			return blockers[i].X < blockers[j].X
		})

		changed := false
		for i := range blockers {
			if blockers[i].ID == placeholder.ID {
				continue
			}
			for j := range blockers {
				if i == j {
					continue
				}
				if !blockers[i].Overlaps(blockers[j]) {
					continue
				}
				res.Pushes = append(res.Pushes, Push{
					Blocker: blockers[j].ID,
					Item:    blockers[i].ID,
					FromY:   blockers[i].Y,
					ToY:     blockers[j].Bottom(),
					Pass:    res.Passes,
				})
				blockers[i].Y = blockers[j].Bottom()
				changed = true
			}
		}

		if !changed {
			res.Converged = true
			break
		}
	}

	res.Rects = blockers
	return res
}
