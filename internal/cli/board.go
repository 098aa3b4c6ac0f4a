package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gridboard/gridboard/pkg/grid"
	"github.com/gridboard/gridboard/pkg/store"
)

// boardCommand creates the board command for editing a layout in the terminal.
func (c *CLI) boardCommand() *cobra.Command {
	var (
		manifest string
		stFlags  storeFlags
		dFlags   dimFlags
	)

	cmd := &cobra.Command{
		Use:   "board [tab]",
		Short: "Edit a tab's layout interactively in the terminal",
		Long: `Edit a tab's layout interactively in the terminal.

The board mirrors the dashboard canvas: panels occupy grid cells and are
pushed aside while one of them is being moved or resized. Moves are
previewed live and only written to the store when committed.

Keys:
  tab / shift+tab   select panel
  enter, g          start moving the selected panel
  r                 start resizing the selected panel
  arrows            move or resize while an operation is active
  enter             commit the operation and save
  esc               cancel the operation
  h                 show or hide the selected panel
  c                 compact the layout and save
  q                 quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tab := defaultTab
			if len(args) > 0 {
				tab = args[0]
			}

			reg, err := loadRegistry(manifest)
			if err != nil {
				return fmt.Errorf("load panel manifest: %w", err)
			}
			st, err := stFlags.open(cmd)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			model, err := loadModel(cmd, reg, st, dFlags.dims(), tab)
			if err != nil {
				return err
			}

			m := newBoardModel(model, st, tab, dFlags.dims())
			_, err = tea.NewProgram(m).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&manifest, "manifest", "m", "", "panel manifest (TOML); built-in demo panels if unset")
	stFlags.register(cmd)
	dFlags.register(cmd)

	return cmd
}

// =============================================================================
// boardModel - Interactive layout editing
// =============================================================================

// boardModel is the bubbletea model for the board editor.
type boardModel struct {
	model  *grid.Model
	ctrl   *grid.Controller
	store  store.Store
	tab    string
	dims   grid.Dims
	cursor int
	ptr    grid.Pointer
	status string
}

func newBoardModel(model *grid.Model, st store.Store, tab string, dims grid.Dims) boardModel {
	ctrl := grid.NewController(model, grid.StaticDims{D: dims}, grid.ControllerConfig{
		Tab:   tab,
		Saver: st,
	})
	return boardModel{
		model: model,
		ctrl:  ctrl,
		store: st,
		tab:   tab,
		dims:  dims,
	}
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.ctrl.Active() {
		return m.updateActive(key)
	}
	return m.updateIdle(key)
}

// updateIdle handles keys while no operation is in progress.
func (m boardModel) updateIdle(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab", "down", "j":
		if n := len(m.model.Items()); n > 0 {
			m.cursor = (m.cursor + 1) % n
		}

	case "shift+tab", "up", "k":
		if n := len(m.model.Items()); n > 0 {
			m.cursor = (m.cursor + n - 1) % n
		}

	case "enter", "g":
		m = m.begin(grid.OpDrag)

	case "r":
		m = m.begin(grid.OpResize)

	case "h":
		id := m.selectedID()
		if it, ok := m.model.Get(id); ok {
			m.model.ToggleVisibility(id, it.Hidden)
			if err := m.store.Save(context.Background(), m.tab, m.model.Snapshot()); err != nil {
				m.status = StyleError.Render("save failed: " + err.Error())
			} else if it.Hidden {
				m.status = StyleSuccess.Render(id + " shown")
			} else {
				m.status = StyleSuccess.Render(id + " hidden")
			}
		}

	case "c":
		m.model.Compact()
		if err := m.store.Save(context.Background(), m.tab, m.model.Snapshot()); err != nil {
			m.status = StyleError.Render("save failed: " + err.Error())
		} else {
			m.status = StyleSuccess.Render("layout compacted")
		}
	}
	return m, nil
}

// updateActive handles keys while a drag or resize is previewing.
func (m boardModel) updateActive(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	var dx, dy float64
	switch key.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.ctrl.Cancel()
		m.status = StyleDim.Render("cancelled")
		return m, nil

	case "enter":
		op := m.ctrl.Op()
		if err := m.ctrl.PointerUp(context.Background(), m.ptr); err != nil {
			m.status = StyleWarning.Render("committed, save failed: " + err.Error())
		} else {
			m.status = StyleSuccess.Render(op.String() + " saved")
		}
		return m, nil

	case "left":
		dx = -1
	case "right":
		dx = 1
	case "up":
		dy = -1
	case "down":
		dy = 1
	default:
		return m, nil
	}

	// One arrow press is one cell. Resize deltas are quantized by the bare
	// cell height, drag targets by the full row span including gap.
	m.ptr.X += dx * m.dims.ColWidth()
	if m.ctrl.Op() == grid.OpResize {
		m.ptr.Y += dy * m.dims.CellHeight
	} else {
		m.ptr.Y += dy * m.dims.RowHeight()
	}
	m.ctrl.PointerMove(m.ptr)
	return m, nil
}

// begin starts a drag or resize on the selected panel with the pointer at the
// panel's pixel origin, so the grab offset is zero and arrow steps map
// directly to cells.
func (m boardModel) begin(op grid.Op) boardModel {
	id := m.selectedID()
	it, ok := m.model.Get(id)
	if !ok {
		return m
	}
	if it.Hidden {
		m.status = StyleWarning.Render(id + " is hidden")
		return m
	}

	px, py := m.dims.CellOrigin(it.X, it.Y)
	m.ptr = grid.Pointer{X: px, Y: py}
	if !m.ctrl.PointerDown(m.ptr, id, op) {
		m.status = StyleWarning.Render("operation already active")
		return m
	}
	m.ctrl.PointerMove(m.ptr)
	m.status = StyleDim.Render(op.String() + "ing " + id)
	return m
}

func (m boardModel) selectedID() string {
	items := m.model.Items()
	if len(items) == 0 {
		return ""
	}
	cur := m.cursor
	if cur >= len(items) {
		cur = len(items) - 1
	}
	return items[cur].ID
}

// =============================================================================
// Rendering
// =============================================================================

// cellChars is the rendered width of one grid cell in characters. Each grid
// row renders as two terminal lines.
const cellChars = 5

func (m boardModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Gridboard - " + m.tab))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("tab select  enter/g move  r resize  h hide  c compact  q quit"))
	b.WriteString("\n\n")

	rects := m.model.VisibleRects("")
	previewing := map[string]bool{}
	if m.ctrl.Active() && m.ctrl.Preview() != nil {
		rects = m.ctrl.Preview()
		for _, r := range rects {
			previewing[r.ID] = true
		}
	}
	selected := m.selectedID()

	b.WriteString(renderBoard(rects, m.dims.Cols, func(id string) lipgloss.Style {
		switch {
		case m.ctrl.Active() && id == selected:
			return stylePanelPreview
		case m.ctrl.Active() && previewing[id]:
			return stylePanelPushed
		case id == selected:
			return stylePanelSelected
		default:
			return stylePanel
		}
	}))

	b.WriteString("\n")
	for i, it := range m.model.Items() {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-12s (%d,%d) %dx%d", cursor, it.ID, it.X, it.Y, it.W, it.H)
		if it.Hidden {
			b.WriteString(StyleDim.Render(line + "  hidden"))
		} else if i == m.cursor {
			b.WriteString(stylePanelSelected.Render(line))
		} else {
			b.WriteString(stylePanel.Render(line))
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	return b.String()
}

// renderBoard draws the grid as text. Occupied cells are filled and carry the
// panel id in their top-left corner; empty cells show a dim dot.
func renderBoard(rects []grid.Rect, cols int, styleFor func(string) lipgloss.Style) string {
	maxRow := 4
	for _, r := range rects {
		if r.Bottom() > maxRow {
			maxRow = r.Bottom()
		}
	}

	var b strings.Builder
	for y := 0; y < maxRow; y++ {
		for line := 0; line < 2; line++ {
			x := 0
			for x < cols {
				r, ok := rectAt(rects, x, y)
				if !ok {
					b.WriteString(styleBoardEmpty.Render(padCell("  ·", cellChars)))
					x++
					continue
				}
				end := r.Right()
				if end > cols {
					end = cols
				}
				width := (end - x) * cellChars
				var content string
				if x == r.X && y == r.Y && line == 0 {
					content = padCell(" "+r.ID, width)
				} else {
					content = strings.Repeat("░", width)
				}
				b.WriteString(styleFor(r.ID).Render(content))
				x = end
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// rectAt returns the first rectangle covering the cell (x, y).
func rectAt(rects []grid.Rect, x, y int) (grid.Rect, bool) {
	probe := grid.Rect{X: x, Y: y, W: 1, H: 1}
	for _, r := range rects {
		if r.Overlaps(probe) {
			return r, true
		}
	}
	return grid.Rect{}, false
}

// padCell pads or truncates s to exactly w characters.
func padCell(s string, w int) string {
	if len(s) > w {
		s = s[:w]
	}
	return s + strings.Repeat(" ", w-len(s))
}
