package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gridboard/gridboard/pkg/grid"
	"github.com/gridboard/gridboard/pkg/registry"
	"github.com/gridboard/gridboard/pkg/store"
)

// showCommand creates the show command for printing a tab's stored layout.
func (c *CLI) showCommand() *cobra.Command {
	var (
		manifest string
		asJSON   bool
		stFlags  storeFlags
		dFlags   dimFlags
	)

	cmd := &cobra.Command{
		Use:   "show [tab]",
		Short: "Print a tab's stored layout",
		Long: `Print a tab's stored layout.

The stored snapshot is normalized against the panel manifest before
printing, so the output is exactly what the dashboard would render: unknown
panels dropped, geometry clamped, missing panels at their defaults. With no
stored snapshot the manifest defaults are shown.`,
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

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(model.Snapshot())
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PANEL\tPOS\tSIZE\tVISIBLE")
			for _, p := range model.Snapshot() {
				visible := "yes"
				if p.Hidden {
					visible = "no"
				}
				fmt.Fprintf(w, "%s\t%d,%d\t%dx%d\t%s\n", p.ID, p.X, p.Y, p.W, p.H, visible)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&manifest, "manifest", "m", "", "panel manifest (TOML); built-in demo panels if unset")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as JSON")
	stFlags.register(cmd)
	dFlags.register(cmd)

	return cmd
}

// compactCommand creates the compact command for removing vertical gaps.
func (c *CLI) compactCommand() *cobra.Command {
	var (
		manifest string
		dryRun   bool
		stFlags  storeFlags
		dFlags   dimFlags
	)

	cmd := &cobra.Command{
		Use:   "compact [tab]",
		Short: "Remove vertical gaps from a tab's layout",
		Long: `Remove vertical gaps from a tab's layout.

Panels slide upward, top rows first, until each rests against the top edge
or another panel. Column positions never change. The compacted layout is
saved back to the store unless --dry-run is given.`,
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

			before := model.Snapshot()
			model.Compact()
			after := model.Snapshot()

			if after.Equal(before) {
				c.Logger.Info("layout already compact", "tab", tab)
				return nil
			}
			if dryRun {
				c.Logger.Info("layout would change (dry run)", "tab", tab)
				return printSnapshot(after)
			}
			if err := st.Save(cmd.Context(), tab, after); err != nil {
				return fmt.Errorf("save tab %s: %w", tab, err)
			}
			c.Logger.Info("layout compacted", "tab", tab, "panels", len(after))
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifest, "manifest", "m", "", "panel manifest (TOML); built-in demo panels if unset")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the compacted layout without saving")
	stFlags.register(cmd)
	dFlags.register(cmd)

	return cmd
}

// loadModel builds a model from the registry and the tab's stored snapshot.
func loadModel(cmd *cobra.Command, reg *registry.Registry, st store.Store, dims grid.Dims, tab string) (*grid.Model, error) {
	snap, err := st.Load(cmd.Context(), tab, nil)
	if err != nil {
		return nil, fmt.Errorf("load tab %s: %w", tab, err)
	}
	model := grid.NewModel(dims)
	if err := reg.Seed(model, snap); err != nil {
		return nil, err
	}
	return model, nil
}

func printSnapshot(snap grid.Snapshot) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}
