package grid

import "math"

// Dims describes the grid geometry for one frame: column count plus the
// pixel size of a cell and the gap between cells. Dims are supplied by a
// DimensionProvider and treated as read-only input; the model re-clamps all
// items whenever the column count changes.
type Dims struct {
	Cols       int
	CellWidth  float64
	CellHeight float64
	Gap        float64
}

// Valid reports whether the dimensions describe a usable grid.
func (d Dims) Valid() bool {
	return d.Cols >= 1 && d.CellWidth > 0 && d.CellHeight > 0 && d.Gap >= 0
}

// ColWidth returns the horizontal pixel span of one column including its gap.
func (d Dims) ColWidth() float64 { return d.CellWidth + d.Gap }

// RowHeight returns the vertical pixel span of one row including its gap.
func (d Dims) RowHeight() float64 { return d.CellHeight + d.Gap }

// CellOrigin returns the pixel origin of the cell at (x, y).
func (d Dims) CellOrigin(x, y int) (px, py float64) {
	return float64(x) * d.ColWidth(), float64(y) * d.RowHeight()
}

// ColAt converts a horizontal pixel coordinate to the nearest column index.
func (d Dims) ColAt(px float64) int {
	return int(math.Round(px / d.ColWidth()))
}

// RowAt converts a vertical pixel coordinate to the nearest row index.
func (d Dims) RowAt(py float64) int {
	return int(math.Round(py / d.RowHeight()))
}

// DimensionProvider supplies the current grid geometry. It may be re-queried
// at any time, typically after a viewport resize.
type DimensionProvider interface {
	Grid() Dims
}

// StaticDims is a DimensionProvider that always returns the same geometry.
type StaticDims struct {
	D Dims
}

// Grid returns the fixed dimensions.
func (s StaticDims) Grid() Dims { return s.D }

// Pointer is a neutral pointer coordinate in pixels. The UI layer translates
// platform input events into Pointer values before calling the controller.
type Pointer struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in grid-cell coordinates.
type Rect struct {
	ID         string
	X, Y, W, H int
}

// Overlaps reports whether two rectangles share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Bottom returns the first row below the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Right returns the first column right of the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// overlapsAny reports whether r overlaps any rectangle in rects, skipping
// entries with the given id.
func overlapsAny(r Rect, rects []Rect, skip string) bool {
	for _, o := range rects {
		if o.ID == skip {
			continue
		}
		if r.Overlaps(o) {
			return true
		}
	}
	return false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
