// Package registry holds the set of panels a dashboard can show, along with
// their default geometry and size constraints.
//
// The registry is read at initialization: the grid model is seeded from the
// registry defaults plus any restored layout snapshot, with snapshot values
// winning. Panels may be declared in code or loaded from a TOML manifest:
//
//	[[panel]]
//	id    = "inventory"
//	title = "Inventory"
//	x = 0
//	y = 0
//	w = 4
//	h = 3
//	min_w = 2
//	min_h = 2
package registry

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/gridboard/gridboard/pkg/errors"
	"github.com/gridboard/gridboard/pkg/grid"
)

// Panel describes one registered panel: identity plus default placement and
// constraints. Zero constraint values fall back to the grid defaults
// (min 2x2, max width = column count).
type Panel struct {
	ID     string `toml:"id" json:"id"`
	Title  string `toml:"title" json:"title"`
	X      int    `toml:"x" json:"x"`
	Y      int    `toml:"y" json:"y"`
	W      int    `toml:"w" json:"w"`
	H      int    `toml:"h" json:"h"`
	MinW   int    `toml:"min_w" json:"min_w,omitempty"`
	MinH   int    `toml:"min_h" json:"min_h,omitempty"`
	MaxW   int    `toml:"max_w" json:"max_w,omitempty"`
	Hidden bool   `toml:"hidden" json:"hidden"`
}

// Registry is an ordered, id-unique collection of panels.
type Registry struct {
	panels []Panel
	index  map[string]int
}

// New builds a registry from the given panels. Malformed or duplicate ids
// are rejected.
func New(panels ...Panel) (*Registry, error) {
	r := &Registry{index: make(map[string]int, len(panels))}
	for _, p := range panels {
		if err := errors.ValidatePanelID(p.ID); err != nil {
			return nil, err
		}
		if _, ok := r.index[p.ID]; ok {
			return nil, errors.New(errors.ErrCodeInvalidPanel, "duplicate panel id: %s", p.ID)
		}
		r.index[p.ID] = len(r.panels)
		r.panels = append(r.panels, p)
	}
	return r, nil
}

// Panels returns all panels in declaration order.
func (r *Registry) Panels() []Panel {
	out := make([]Panel, len(r.panels))
	copy(out, r.panels)
	return out
}

// Get returns the panel with the given id.
func (r *Registry) Get(id string) (Panel, bool) {
	i, ok := r.index[id]
	if !ok {
		return Panel{}, false
	}
	return r.panels[i], true
}

// Len returns the number of registered panels.
func (r *Registry) Len() int { return len(r.panels) }

// Seed populates a grid model from the registry defaults, then overlays the
// snapshot. Snapshot entries for panels not in the registry are ignored;
// registry panels absent from the snapshot keep their defaults.
func (r *Registry) Seed(m *grid.Model, snap grid.Snapshot) error {
	for _, p := range r.panels {
		if _, err := m.AddItem(grid.ItemConfig{
			ID:     p.ID,
			X:      p.X,
			Y:      p.Y,
			W:      p.W,
			H:      p.H,
			Hidden: p.Hidden,
			MinW:   p.MinW,
			MinH:   p.MinH,
			MaxW:   p.MaxW,
		}); err != nil {
			return err
		}
	}
	m.Restore(snap)
	return nil
}

// manifest is the TOML file layout.
type manifest struct {
	Panels []Panel `toml:"panel"`
}

// ParseManifest decodes a TOML panel manifest.
func ParseManifest(data []byte) (*Registry, error) {
	var man manifest
	if err := toml.Unmarshal(data, &man); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse panel manifest")
	}
	return New(man.Panels...)
}

// LoadManifest reads and decodes a TOML panel manifest from disk.
func LoadManifest(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read panel manifest %s", path)
	}
	return ParseManifest(data)
}
