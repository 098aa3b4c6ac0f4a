package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridboard/gridboard/pkg/grid"
	"github.com/gridboard/gridboard/pkg/render/pushes"
)

// debugCommand creates the debug command group for resolver inspection.
func (c *CLI) debugCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Resolver debugging tools",
	}

	cmd.AddCommand(c.debugPushesCommand())

	return cmd
}

// debugPushesCommand creates the debug pushes command, which renders a push
// cascade as a graph.
func (c *CLI) debugPushesCommand() *cobra.Command {
	var (
		manifest string
		item     string
		toX, toY int
		w, h     int
		budget   int
		output   string
		format   string
		stFlags  storeFlags
		dFlags   dimFlags
	)

	cmd := &cobra.Command{
		Use:   "pushes [tab]",
		Short: "Render the push cascade for a hypothetical move",
		Long: `Render the push cascade for a hypothetical move.

Loads the tab's layout, places the named panel at the target cell, and runs
the collision resolver against the remaining panels. The resulting chain of
displacements is rendered as a directed graph: edges point from the panel
that pushed to the panel that moved, labeled with the pass number and row
change. Useful for understanding why a drag settled where it did.`,
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

			it, ok := model.Get(item)
			if !ok {
				return fmt.Errorf("unknown panel %q", item)
			}
			placeholder := grid.Rect{ID: it.ID, X: toX, Y: toY, W: it.W, H: it.H}
			if w > 0 {
				placeholder.W = w
			}
			if h > 0 {
				placeholder.H = h
			}

			res := grid.Resolve(placeholder, model.VisibleRects(it.ID), budget)
			if !res.Converged {
				c.Logger.Warn("resolver did not converge", "passes", res.Passes, "budget", budget)
			}
			c.Logger.Debug("resolved", "passes", res.Passes, "pushes", len(res.Pushes))

			dot := pushes.ToDOT(it.ID, res)
			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = pushes.RenderSVG(dot)
				if err != nil {
					return fmt.Errorf("render SVG: %w", err)
				}
			default:
				return fmt.Errorf("unknown format %q (want dot or svg)", format)
			}

			if output == "" || output == "-" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			c.Logger.Info("push graph written", "path", output, "format", format)
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifest, "manifest", "m", "", "panel manifest (TOML); built-in demo panels if unset")
	cmd.Flags().StringVar(&item, "item", "", "panel to move (required)")
	cmd.Flags().IntVar(&toX, "x", 0, "target column")
	cmd.Flags().IntVar(&toY, "y", 0, "target row")
	cmd.Flags().IntVar(&w, "width", 0, "override width in cells (0 keeps current)")
	cmd.Flags().IntVar(&h, "height", 0, "override height in cells (0 keeps current)")
	cmd.Flags().IntVar(&budget, "budget", grid.DefaultBudget, "resolver iteration budget")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output path (- for stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot or svg")
	_ = cmd.MarkFlagRequired("item")
	stFlags.register(cmd)
	dFlags.register(cmd)

	return cmd
}
