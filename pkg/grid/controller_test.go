package grid

import (
	"context"
	"errors"
	"testing"
)

// recordingSaver captures committed snapshots.
type recordingSaver struct {
	tab   string
	snaps []Snapshot
	err   error
}

func (s *recordingSaver) Save(_ context.Context, tab string, snap Snapshot) error {
	s.tab = tab
	s.snaps = append(s.snaps, snap)
	return s.err
}

func newTestController(t *testing.T, saver Saver) (*Model, *Controller) {
	t.Helper()
	m := NewModel(testDims())
	mustAdd(t, m, ItemConfig{ID: "a", X: 0, Y: 0, W: 4, H: 3})
	mustAdd(t, m, ItemConfig{ID: "b", X: 4, Y: 0, W: 4, H: 3})
	c := NewController(m, StaticDims{D: testDims()}, ControllerConfig{Tab: "main", Saver: saver})
	return m, c
}

func TestDragCommit(t *testing.T) {
	saver := &recordingSaver{}
	m, c := newTestController(t, saver)
	d := testDims()

	// Grab a slightly inside its top-left cell and drop it at column 2.
	px, py := d.CellOrigin(0, 0)
	down := Pointer{X: px + 10, Y: py + 10}
	if !c.PointerDown(down, "a", OpDrag) {
		t.Fatal("PointerDown() = false")
	}

	tx, ty := d.CellOrigin(2, 0)
	up := Pointer{X: tx + 10, Y: ty + 10}
	c.PointerMove(up)
	if err := c.PointerUp(context.Background(), up); err != nil {
		t.Fatalf("PointerUp() error = %v", err)
	}

	a, _ := m.Get("a")
	if a.X != 2 || a.Y != 0 {
		t.Errorf("a at (%d,%d), want (2,0)", a.X, a.Y)
	}
	// b must have yielded downward out of a's way.
	b, _ := m.Get("b")
	if b.X != 4 || b.Y < 3 {
		t.Errorf("b at (%d,%d), want (4,>=3)", b.X, b.Y)
	}
	if m.Overlapping() {
		t.Error("Overlapping() = true after commit")
	}

	if saver.tab != "main" || len(saver.snaps) != 1 {
		t.Fatalf("saver got tab=%q snaps=%d, want main/1", saver.tab, len(saver.snaps))
	}
	if !saver.snaps[0].Equal(m.Snapshot()) {
		t.Error("saved snapshot differs from model state")
	}
	if c.Active() {
		t.Error("Active() = true after commit")
	}
}

func TestDragGrabOffset(t *testing.T) {
	_, c := newTestController(t, nil)
	d := testDims()

	// Grab a near its right edge (column 3 of the item) and nudge the
	// pointer one column right. The target must follow the grab point: one
	// column over, not the pointer's absolute column.
	if !c.PointerDown(Pointer{X: 3*d.ColWidth() + 10, Y: 10}, "a", OpDrag) {
		t.Fatal("PointerDown() = false")
	}
	c.PointerMove(Pointer{X: 4*d.ColWidth() + 10, Y: 10})

	a, ok := previewRect(c, "a")
	if !ok {
		t.Fatal("no preview for a")
	}
	if a.X != 1 || a.Y != 0 {
		t.Errorf("preview target (%d,%d), want (1,0)", a.X, a.Y)
	}
}

func TestDragClampedToGrid(t *testing.T) {
	_, c := newTestController(t, nil)
	d := testDims()

	px, py := d.CellOrigin(0, 0)
	c.PointerDown(Pointer{X: px, Y: py}, "a", OpDrag)

	// Way off the right edge and above the top.
	c.PointerMove(Pointer{X: 30 * d.ColWidth(), Y: -500})

	a, _ := previewRect(c, "a")
	if a.X != 12-4 {
		t.Errorf("a.X = %d, want %d", a.X, 12-4)
	}
	if a.Y != 0 {
		t.Errorf("a.Y = %d, want 0", a.Y)
	}
}

func TestPreviewIsNotCommitted(t *testing.T) {
	saver := &recordingSaver{}
	m, c := newTestController(t, saver)
	d := testDims()

	c.PointerDown(Pointer{}, "a", OpDrag)
	c.PointerMove(Pointer{X: 2 * d.ColWidth(), Y: 0})

	if c.Preview() == nil {
		t.Fatal("Preview() = nil during drag")
	}
	// The model still holds the committed positions.
	a, _ := m.Get("a")
	if a.X != 0 {
		t.Errorf("model a.X = %d during preview, want 0", a.X)
	}
	if len(saver.snaps) != 0 {
		t.Error("preview reached the saver")
	}
}

func TestCancelDiscardsPreview(t *testing.T) {
	saver := &recordingSaver{}
	m, c := newTestController(t, saver)
	d := testDims()

	c.PointerDown(Pointer{}, "a", OpDrag)
	c.PointerMove(Pointer{X: 2 * d.ColWidth(), Y: 0})
	c.Cancel()

	if c.Active() {
		t.Error("Active() = true after Cancel")
	}
	if c.Preview() != nil {
		t.Error("Preview() != nil after Cancel")
	}
	a, _ := m.Get("a")
	if a.X != 0 || a.Y != 0 {
		t.Errorf("a moved by cancelled drag: (%d,%d)", a.X, a.Y)
	}
	if len(saver.snaps) != 0 {
		t.Error("cancelled drag reached the saver")
	}
}

func TestSecondOperationRejected(t *testing.T) {
	_, c := newTestController(t, nil)

	if !c.PointerDown(Pointer{}, "a", OpDrag) {
		t.Fatal("first PointerDown() = false")
	}
	if c.PointerDown(Pointer{}, "b", OpDrag) {
		t.Error("second PointerDown() = true while drag active")
	}
	if c.Op() != OpDrag {
		t.Errorf("Op() = %v, want drag", c.Op())
	}
}

func TestPointerDownRejectsUnknownAndHidden(t *testing.T) {
	m, c := newTestController(t, nil)

	if c.PointerDown(Pointer{}, "ghost", OpDrag) {
		t.Error("PointerDown(unknown) = true")
	}

	m.ToggleVisibility("a", false)
	if c.PointerDown(Pointer{}, "a", OpDrag) {
		t.Error("PointerDown(hidden) = true")
	}

	if c.PointerDown(Pointer{}, "b", OpNone) {
		t.Error("PointerDown(OpNone) = true")
	}
}

func TestResizeCommit(t *testing.T) {
	saver := &recordingSaver{}
	m := NewModel(testDims())
	mustAdd(t, m, ItemConfig{ID: "a", X: 0, Y: 0, W: 3, H: 2})
	mustAdd(t, m, ItemConfig{ID: "b", X: 3, Y: 0, W: 3, H: 2})
	c := NewController(m, StaticDims{D: testDims()}, ControllerConfig{Tab: "main", Saver: saver})
	d := testDims()

	// Widen a from 3 to 6 columns by dragging its handle three columns right.
	start := Pointer{X: 300, Y: 100}
	if !c.PointerDown(start, "a", OpResize) {
		t.Fatal("PointerDown() = false")
	}
	end := Pointer{X: start.X + 3*d.ColWidth(), Y: start.Y}
	c.PointerMove(end)
	if err := c.PointerUp(context.Background(), end); err != nil {
		t.Fatalf("PointerUp() error = %v", err)
	}

	a, _ := m.Get("a")
	if a.W != 6 || a.H != 2 || a.X != 0 || a.Y != 0 {
		t.Errorf("a = %+v, want (0,0) 6x2", a)
	}
	// b keeps its columns but moves below a.
	b, _ := m.Get("b")
	if b.X != 3 || b.Y != 2 {
		t.Errorf("b at (%d,%d), want (3,2)", b.X, b.Y)
	}
	if m.Overlapping() {
		t.Error("Overlapping() = true after resize commit")
	}
}

func TestResizeRespectsConstraints(t *testing.T) {
	m := NewModel(testDims())
	mustAdd(t, m, ItemConfig{ID: "a", X: 8, Y: 0, W: 4, H: 3, MinW: 2, MinH: 2})
	c := NewController(m, StaticDims{D: testDims()}, ControllerConfig{})
	d := testDims()

	start := Pointer{X: 0, Y: 0}
	c.PointerDown(start, "a", OpResize)

	// Shrinking far below the minimum clamps at MinW x MinH.
	c.PointerMove(Pointer{X: -20 * d.ColWidth(), Y: -20 * d.CellHeight})
	a, _ := previewRect(c, "a")
	if a.W != 2 || a.H != 2 {
		t.Errorf("shrunk to %dx%d, want 2x2", a.W, a.H)
	}

	// Growing past the right edge clamps at the grid boundary.
	c.PointerMove(Pointer{X: 20 * d.ColWidth(), Y: 0})
	a, _ = previewRect(c, "a")
	if a.X+a.W > 12 {
		t.Errorf("resize escaped the grid: x=%d w=%d", a.X, a.W)
	}
	if a.W != 4 {
		t.Errorf("a.W = %d, want 4 (cols - x)", a.W)
	}
}

func TestCommitIsNotRolledBackOnSaveFailure(t *testing.T) {
	saver := &recordingSaver{err: errors.New("disk full")}
	m, c := newTestController(t, saver)
	d := testDims()

	c.PointerDown(Pointer{}, "a", OpDrag)
	end := Pointer{X: 2 * d.ColWidth(), Y: 0}
	err := c.PointerUp(context.Background(), end)

	if err == nil {
		t.Fatal("PointerUp() error = nil, want save failure")
	}
	// In-memory state keeps the committed move.
	a, _ := m.Get("a")
	if a.X != 2 {
		t.Errorf("a.X = %d, want 2 (commit rolled back)", a.X)
	}
	if c.Active() {
		t.Error("Active() = true after failed save")
	}
}

func TestPointerUpWhileIdleIsNoop(t *testing.T) {
	saver := &recordingSaver{}
	_, c := newTestController(t, saver)

	if err := c.PointerUp(context.Background(), Pointer{}); err != nil {
		t.Errorf("PointerUp() error = %v, want nil", err)
	}
	if len(saver.snaps) != 0 {
		t.Error("idle PointerUp reached the saver")
	}
}

func previewRect(c *Controller, id string) (Rect, bool) {
	for _, r := range c.Preview() {
		if r.ID == id {
			return r, true
		}
	}
	return Rect{}, false
}
