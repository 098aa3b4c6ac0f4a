package grid

import "testing"

func TestDimsConversions(t *testing.T) {
	d := testDims() // 12 cols, 90px cells, 14px gap

	if got := d.ColWidth(); got != 104 {
		t.Errorf("ColWidth() = %v, want 104", got)
	}
	if got := d.RowHeight(); got != 104 {
		t.Errorf("RowHeight() = %v, want 104", got)
	}

	px, py := d.CellOrigin(3, 2)
	if px != 312 || py != 208 {
		t.Errorf("CellOrigin(3,2) = (%v,%v), want (312,208)", px, py)
	}

	// Round trip: the cell origin converts back to the same cell.
	if got := d.ColAt(px); got != 3 {
		t.Errorf("ColAt(%v) = %d, want 3", px, got)
	}
	if got := d.RowAt(py); got != 2 {
		t.Errorf("RowAt(%v) = %d, want 2", py, got)
	}
}

func TestDimsColAtRounding(t *testing.T) {
	d := testDims()
	tests := []struct {
		px   float64
		want int
	}{
		{0, 0},
		{51, 0},   // just under half a column
		{53, 1},   // just over half a column
		{104, 1},
		{312, 3},
	}
	for _, tt := range tests {
		if got := d.ColAt(tt.px); got != tt.want {
			t.Errorf("ColAt(%v) = %d, want %d", tt.px, got, tt.want)
		}
	}
}

func TestDimsValid(t *testing.T) {
	tests := []struct {
		name string
		d    Dims
		want bool
	}{
		{"valid", testDims(), true},
		{"zero gap ok", Dims{Cols: 12, CellWidth: 90, CellHeight: 90}, true},
		{"no columns", Dims{Cols: 0, CellWidth: 90, CellHeight: 90}, false},
		{"zero cell width", Dims{Cols: 12, CellHeight: 90}, false},
		{"negative gap", Dims{Cols: 12, CellWidth: 90, CellHeight: 90, Gap: -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectOverlaps(t *testing.T) {
	base := Rect{X: 2, Y: 2, W: 4, H: 3}
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"identical", Rect{X: 2, Y: 2, W: 4, H: 3}, true},
		{"one cell shared", Rect{X: 5, Y: 4, W: 2, H: 2}, true},
		{"contained", Rect{X: 3, Y: 3, W: 1, H: 1}, true},
		{"touching right edge", Rect{X: 6, Y: 2, W: 2, H: 3}, false},
		{"touching bottom edge", Rect{X: 2, Y: 5, W: 4, H: 2}, false},
		{"disjoint", Rect{X: 8, Y: 8, W: 2, H: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps(%+v) = %v, want %v", tt.other, got, tt.want)
			}
			// Overlap is symmetric.
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Errorf("reverse Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}
