package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridboard/gridboard/internal/server"
)

// serveCommand creates the serve command for running the layout HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		manifest string
		stFlags  storeFlags
		dFlags   dimFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard layout API",
		Long: `Run the dashboard layout API.

The server exposes per-tab layout snapshots over HTTP and broadcasts
committed layouts to websocket subscribers. Incoming snapshots are validated
and normalized against the panel manifest before they are persisted:
malformed entries are dropped, unknown panels are ignored, and panels missing
from a snapshot fall back to their manifest defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(manifest)
			if err != nil {
				return fmt.Errorf("load panel manifest: %w", err)
			}

			st, err := stFlags.open(cmd)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			c.Logger.Info("starting layout API", "addr", addr, "store", stFlags.backend, "panels", reg.Len())
			srv := server.New(reg, st, server.Config{Dims: dFlags.dims(), Logger: c.Logger})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8373", "listen address")
	cmd.Flags().StringVarP(&manifest, "manifest", "m", "", "panel manifest (TOML); built-in demo panels if unset")
	stFlags.register(cmd)
	dFlags.register(cmd)

	return cmd
}
