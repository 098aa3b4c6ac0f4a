package grid

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gridboard/gridboard/pkg/observability"
)

// Op identifies the kind of pointer operation in progress.
type Op int

const (
	// OpNone means the controller is idle.
	OpNone Op = iota
	// OpDrag moves an item to a new cell.
	OpDrag
	// OpResize changes an item's span from its bottom-right handle.
	OpResize
)

// String returns the operation name.
func (o Op) String() string {
	switch o {
	case OpDrag:
		return "drag"
	case OpResize:
		return "resize"
	default:
		return "none"
	}
}

// Saver persists a committed layout snapshot. Implemented by pkg/store
// backends; the controller calls it synchronously after every commit and
// never retries on failure.
type Saver interface {
	Save(ctx context.Context, tab string, snap Snapshot) error
}

// ControllerConfig configures a Controller.
type ControllerConfig struct {
	// Tab is the layout id passed to the Saver on commit.
	Tab string

	// Saver receives the committed snapshot. Optional; nil disables
	// persistence (previews and commits still work).
	Saver Saver

	// Budget caps resolver iterations; 0 uses DefaultBudget. Injectable so
	// tests can exercise the non-convergent path deterministically.
	Budget int

	// Logger for resolution warnings. Optional; nil uses log.Default().
	Logger *log.Logger
}

// Controller orchestrates drag and resize interactions as a state machine:
// Idle -> Active (previewing) -> Idle on commit or cancel. At most one
// operation is active at a time; starting a second is rejected until the
// first returns to idle.
type Controller struct {
	model *Model
	dims  DimensionProvider
	cfg   ControllerConfig
	log   *log.Logger

	op     Op
	itemID string

	// Grab offset: pointer position minus the item's pixel origin at
	// PointerDown, so the drop target reflects where the user grabbed the
	// item rather than its corner.
	grabX, grabY float64

	// Geometry and pointer at operation start, used for resize deltas.
	startW, startH int
	startPtr       Pointer

	preview []Rect
}

// NewController creates a controller over the given model and dimensions.
func NewController(m *Model, dp DimensionProvider, cfg ControllerConfig) *Controller {
	l := cfg.Logger
	if l == nil {
		l = log.Default()
	}
	return &Controller{model: m, dims: dp, cfg: cfg, log: l}
}

// Active reports whether an operation is in progress.
func (c *Controller) Active() bool { return c.op != OpNone }

// Op returns the operation in progress, or OpNone.
func (c *Controller) Op() Op { return c.op }

// Preview returns the last resolved rectangles of the active operation.
// Preview state is render-only: it is never written to the model and is
// discarded on cancel. Returns nil when idle.
func (c *Controller) Preview() []Rect { return c.preview }

// PointerDown begins a drag or resize on the item with the given id.
// Returns false if an operation is already active, the id is unknown, or the
// item is hidden.
func (c *Controller) PointerDown(p Pointer, id string, op Op) bool {
	if c.op != OpNone || (op != OpDrag && op != OpResize) {
		return false
	}
	it, ok := c.model.Get(id)
	if !ok || it.Hidden {
		return false
	}

	d := c.dims.Grid()
	px, py := d.CellOrigin(it.X, it.Y)

	c.op = op
	c.itemID = id
	c.grabX = p.X - px
	c.grabY = p.Y - py
	c.startW = it.W
	c.startH = it.H
	c.startPtr = p
	c.preview = nil
	return true
}

// PointerMove recomputes the tentative placement for the current pointer
// position and refreshes the preview. No-op when idle.
func (c *Controller) PointerMove(p Pointer) {
	if c.op == OpNone {
		return
	}
	res := c.resolve(context.Background(), p)
	c.preview = res.Rects
}

// PointerUp finishes the active operation: the final placement is resolved
// once more, committed into the model, and handed to the Saver. The commit
// is never rolled back; a persistence failure is returned to the caller with
// the in-memory state already updated.
func (c *Controller) PointerUp(ctx context.Context, p Pointer) error {
	if c.op == OpNone {
		return nil
	}
	op, id := c.op, c.itemID

	res := c.resolve(ctx, p)
	c.model.ApplyRects(res.Rects)
	c.model.ClampToBounds(id)
	c.reset()

	observability.Layout().OnCommit(ctx, c.cfg.Tab, op.String(), id)

	if c.cfg.Saver == nil {
		return nil
	}
	return c.cfg.Saver.Save(ctx, c.cfg.Tab, c.model.Snapshot())
}

// Cancel aborts the active operation without committing. Any preview state
// is discarded; the model still holds the last committed positions.
func (c *Controller) Cancel() {
	c.reset()
}

func (c *Controller) reset() {
	c.op = OpNone
	c.itemID = ""
	c.preview = nil
}

// resolve computes the placeholder for the current pointer position and runs
// the collision resolver against all other visible items.
func (c *Controller) resolve(ctx context.Context, p Pointer) Result {
	it, ok := c.model.Get(c.itemID)
	if !ok {
		// Item removed mid-operation; nothing to place.
		return Result{Converged: true}
	}

	d := c.dims.Grid()
	var placeholder Rect
	switch c.op {
	case OpResize:
		placeholder = c.resizeTarget(it, d, p)
	default:
		placeholder = c.dragTarget(it, d, p)
	}

	others := c.model.VisibleRects(c.itemID)
	observability.Layout().OnResolveStart(ctx, c.cfg.Tab, len(others)+1)
	start := time.Now()

	res := Resolve(placeholder, others, c.cfg.Budget)

	observability.Layout().OnResolveComplete(ctx, c.cfg.Tab, res.Passes, res.Converged, time.Since(start))
	if !res.Converged {
		budget := c.cfg.Budget
		if budget <= 0 {
			budget = DefaultBudget
		}
		observability.Layout().OnBudgetExhausted(ctx, c.cfg.Tab, budget)
		c.log.Warn("collision resolution hit iteration budget", "tab", c.cfg.Tab, "item", c.itemID, "budget", budget)
	}
	return res
}

// dragTarget converts the pointer, corrected by the grab offset, to the
// tentative target cell. The column range is clamped so the item stays
// inside the grid.
func (c *Controller) dragTarget(it Item, d Dims, p Pointer) Rect {
	x := d.ColAt(p.X - c.grabX)
	y := d.RowAt(p.Y - c.grabY)
	x = clampInt(x, 0, d.Cols-it.W)
	if y < 0 {
		y = 0
	}
	return Rect{ID: it.ID, X: x, Y: y, W: it.W, H: it.H}
}

// resizeTarget converts pointer displacement since PointerDown to a span
// delta. Horizontal deltas are quantized by column width including gap,
// vertical ones by cell height. Each axis is clamped to the item's
// constraints before resolution.
func (c *Controller) resizeTarget(it Item, d Dims, p Pointer) Rect {
	dw := int(math.Round((p.X - c.startPtr.X) / d.ColWidth()))
	dh := int(math.Round((p.Y - c.startPtr.Y) / d.CellHeight))

	maxW := it.maxWidth(d.Cols)
	if maxW > d.Cols-it.X {
		maxW = d.Cols - it.X
	}
	minW := it.MinW
	if minW > maxW {
		minW = maxW
	}
	w := clampInt(c.startW+dw, minW, maxW)
	h := c.startH + dh
	if h < it.MinH {
		h = it.MinH
	}
	return Rect{ID: it.ID, X: it.X, Y: it.Y, W: w, H: h}
}
