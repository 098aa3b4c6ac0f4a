package grid

// Default size constraints applied when an ItemConfig leaves them unset.
const (
	DefaultMinW = 2
	DefaultMinH = 2
)

// Item is one panel's placement on the grid. Coordinates are 0-based cell
// indices; W and H are cell spans. Hidden items are excluded from collision
// checks and rendering but retain their last known geometry.
type Item struct {
	ID     string
	X, Y   int
	W, H   int
	Hidden bool

	// Size constraints. MaxW of 0 means "column count".
	MinW, MinH, MaxW int
}

// Rect returns the item's rectangle in cell coordinates.
func (it Item) Rect() Rect {
	return Rect{ID: it.ID, X: it.X, Y: it.Y, W: it.W, H: it.H}
}

// maxWidth returns the effective maximum width given the column count.
func (it Item) maxWidth(cols int) int {
	if it.MaxW <= 0 || it.MaxW > cols {
		return cols
	}
	return it.MaxW
}

// ItemConfig describes a panel to add to the model.
type ItemConfig struct {
	ID     string
	X, Y   int
	W, H   int
	Hidden bool

	// Constraints; zero values fall back to DefaultMinW/DefaultMinH and the
	// column count respectively.
	MinW, MinH, MaxW int

	// AutoPlace ignores X and Y and scans row-major for the first free cell.
	AutoPlace bool
}
