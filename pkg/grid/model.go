package grid

import (
	"sort"

	"github.com/gridboard/gridboard/pkg/errors"
)

// Model is the single source of truth for item geometry. It enforces bounds
// and size constraints on every write; callers obtain copies of item state,
// never references into the model.
//
// The model is not safe for concurrent use. The placement engine is
// single-threaded by design: all mutation happens synchronously inside input
// event handlers.
type Model struct {
	dims  Dims
	items []*Item // insertion order
	index map[string]*Item
}

// NewModel creates an empty model with the given dimensions.
func NewModel(dims Dims) *Model {
	return &Model{
		dims:  dims,
		index: make(map[string]*Item),
	}
}

// Dims returns the current grid dimensions.
func (m *Model) Dims() Dims { return m.dims }

// Reflow replaces the grid dimensions and re-clamps every item against the
// new column count. Called when the DimensionProvider reports a change.
func (m *Model) Reflow(dims Dims) error {
	if !dims.Valid() {
		return errors.New(errors.ErrCodeInvalidDimensions, "cols=%d cell=%gx%g gap=%g", dims.Cols, dims.CellWidth, dims.CellHeight, dims.Gap)
	}
	m.dims = dims
	for _, it := range m.items {
		m.clamp(it)
	}
	return nil
}

// AddItem registers a new item. If cfg.AutoPlace is set, or the requested
// cell collides with a visible item, the item is placed at the first free
// cell scanning row-major from (0,0). The model never produces an
// overlapping item silently.
func (m *Model) AddItem(cfg ItemConfig) (Item, error) {
	if cfg.ID == "" {
		return Item{}, errors.New(errors.ErrCodeInvalidPanel, "empty panel id")
	}
	if _, ok := m.index[cfg.ID]; ok {
		return Item{}, errors.New(errors.ErrCodeInvalidPanel, "duplicate panel id: %s", cfg.ID)
	}

	it := &Item{
		ID:     cfg.ID,
		X:      cfg.X,
		Y:      cfg.Y,
		W:      cfg.W,
		H:      cfg.H,
		Hidden: cfg.Hidden,
		MinW:   cfg.MinW,
		MinH:   cfg.MinH,
		MaxW:   cfg.MaxW,
	}
	if it.MinW <= 0 {
		it.MinW = DefaultMinW
	}
	if it.MinH <= 0 {
		it.MinH = DefaultMinH
	}
	m.clamp(it)

	if !it.Hidden {
		universe := m.VisibleRects("")
		if cfg.AutoPlace || overlapsAny(it.Rect(), universe, it.ID) {
			it.X, it.Y = m.firstFree(it.W, it.H, universe)
		}
	}

	m.items = append(m.items, it)
	m.index[it.ID] = it
	return *it, nil
}

// RemoveItem deletes the item with the given id. Unknown ids are a no-op;
// siblings are not moved (gaps are only removed by an explicit Compact).
func (m *Model) RemoveItem(id string) {
	it, ok := m.index[id]
	if !ok {
		return
	}
	delete(m.index, id)
	for i, cur := range m.items {
		if cur == it {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
}

// ToggleVisibility shows or hides an item. Hidden items keep their geometry
// for later restoration. Unknown ids are a no-op.
func (m *Model) ToggleVisibility(id string, visible bool) {
	it, ok := m.index[id]
	if !ok {
		return
	}
	it.Hidden = !visible
}

// Get returns a copy of the item with the given id.
func (m *Model) Get(id string) (Item, bool) {
	it, ok := m.index[id]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

// Items returns copies of all items in insertion order.
func (m *Model) Items() []Item {
	out := make([]Item, len(m.items))
	for i, it := range m.items {
		out[i] = *it
	}
	return out
}

// VisibleRects returns the rectangles of all visible items, skipping the
// given id. This is the collision universe used by the resolver.
func (m *Model) VisibleRects(skip string) []Rect {
	out := make([]Rect, 0, len(m.items))
	for _, it := range m.items {
		if it.Hidden || it.ID == skip {
			continue
		}
		out = append(out, it.Rect())
	}
	return out
}

// ApplyRects writes resolved rectangles back into the model, clamping each
// touched item to bounds. Rectangles for unknown ids are ignored.
func (m *Model) ApplyRects(rects []Rect) {
	for _, r := range rects {
		it, ok := m.index[r.ID]
		if !ok {
			continue
		}
		it.X, it.Y, it.W, it.H = r.X, r.Y, r.W, r.H
		m.clamp(it)
	}
}

// ClampToBounds clips the item's width to the column count, its x into
// [0, cols-w], and its y to be non-negative. Unknown ids are a no-op.
func (m *Model) ClampToBounds(id string) {
	if it, ok := m.index[id]; ok {
		m.clamp(it)
	}
}

// Compact removes vertical gaps: each visible item, in top-to-bottom and
// left-to-right order, is moved up while no collision occurs. Only invoked
// on explicit user request, never during drag or resize.
func (m *Model) Compact() {
	visible := make([]*Item, 0, len(m.items))
	for _, it := range m.items {
		if !it.Hidden {
			visible = append(visible, it)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		if visible[i].Y != visible[j].Y {
			return visible[i].Y < visible[j].Y
		}
		return visible[i].X < visible[j].X
	})

	for _, it := range visible {
		for it.Y > 0 {
			probe := it.Rect()
			probe.Y--
			if overlapsAny(probe, m.VisibleRects(it.ID), it.ID) {
				break
			}
			it.Y--
		}
	}
}

// Overlapping reports whether any two visible items overlap. A true result
// after a commit indicates a programming error in the caller: placement
// without resolution.
func (m *Model) Overlapping() bool {
	rects := m.VisibleRects("")
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			if rects[i].Overlaps(rects[j]) {
				return true
			}
		}
	}
	return false
}

// clamp enforces the bounds invariants on a single item: w within
// [minW, min(maxW, cols)], h at least minH, x within [0, cols-w], y >= 0.
func (m *Model) clamp(it *Item) {
	cols := m.dims.Cols
	maxW := it.maxWidth(cols)
	minW := it.MinW
	if minW > maxW {
		minW = maxW
	}
	it.W = clampInt(it.W, minW, maxW)
	if it.H < it.MinH {
		it.H = it.MinH
	}
	it.X = clampInt(it.X, 0, cols-it.W)
	if it.Y < 0 {
		it.Y = 0
	}
}

// firstFree scans row-major from (0,0) for the first cell where a w x h
// rectangle fits without touching any rectangle in universe. The scan always
// terminates: below the lowest occupied row every position is free.
func (m *Model) firstFree(w, h int, universe []Rect) (x, y int) {
	if w > m.dims.Cols {
		w = m.dims.Cols
	}
	for y = 0; ; y++ {
		for x = 0; x+w <= m.dims.Cols; x++ {
			probe := Rect{X: x, Y: y, W: w, H: h}
			if !overlapsAny(probe, universe, "") {
				return x, y
			}
		}
	}
}
