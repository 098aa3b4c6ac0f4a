// Package cli implements the gridboard command-line interface.
//
// This package provides commands for serving the dashboard layout API,
// editing layouts interactively in the terminal, inspecting and compacting
// stored tabs, and debugging the collision resolver. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - serve: Run the layout HTTP API with live websocket updates
//   - board: Edit a tab's layout interactively in the terminal
//   - show: Print a tab's stored layout
//   - compact: Remove vertical gaps from a tab's layout
//   - debug: Resolver debugging tools (push-cascade graphs)
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gridboard/gridboard/pkg/buildinfo"
	"github.com/gridboard/gridboard/pkg/grid"
	"github.com/gridboard/gridboard/pkg/registry"
	"github.com/gridboard/gridboard/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "gridboard"

	// defaultTab is the tab edited or shown when none is named.
	defaultTab = "main"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Default grid geometry, matching the web dashboard's canvas.
var defaultDims = grid.Dims{Cols: 12, CellWidth: 90, CellHeight: 90, Gap: 14}

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Gridboard arranges dashboard panels on a snap-to-grid canvas",
		Long:         `Gridboard is the placement engine behind a customizable dashboard: panels live on an integer grid, never overlap, and are pushed aside deterministically while one of them is dragged or resized. Layouts are saved per tab.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.boardCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.compactCommand())
	root.AddCommand(c.debugCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Flags
// =============================================================================

// storeFlags selects and configures a persistence backend.
type storeFlags struct {
	backend   string
	dir       string
	redisAddr string
	mongoURI  string
	mongoDB   string
}

func (f *storeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.backend, "store", "file", "persistence backend: file, memory, redis, mongo, none")
	cmd.Flags().StringVar(&f.dir, "store-dir", "", "directory for the file backend (default: ~/.config/gridboard/layouts)")
	cmd.Flags().StringVar(&f.redisAddr, "redis-addr", "localhost:6379", "redis address for the redis backend")
	cmd.Flags().StringVar(&f.mongoURI, "mongo-uri", "mongodb://localhost:27017", "connection URI for the mongo backend")
	cmd.Flags().StringVar(&f.mongoDB, "mongo-db", appName, "database name for the mongo backend")
}

// open creates the selected store. The caller owns the returned store and
// must close it.
func (f *storeFlags) open(cmd *cobra.Command) (store.Store, error) {
	ctx := cmd.Context()
	switch f.backend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		return store.NewRedisStore(ctx, store.RedisConfig{Addr: f.redisAddr})
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{URI: f.mongoURI, Database: f.mongoDB})
	case "none":
		return store.NewNullStore(), nil
	default:
		return store.NewFileStore(f.dir)
	}
}

// dimFlags configures the grid geometry.
type dimFlags struct {
	cols       int
	cellWidth  float64
	cellHeight float64
	gap        float64
}

func (f *dimFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.cols, "cols", defaultDims.Cols, "grid column count")
	cmd.Flags().Float64Var(&f.cellWidth, "cell-width", defaultDims.CellWidth, "cell width in pixels")
	cmd.Flags().Float64Var(&f.cellHeight, "cell-height", defaultDims.CellHeight, "cell height in pixels")
	cmd.Flags().Float64Var(&f.gap, "gap", defaultDims.Gap, "gap between cells in pixels")
}

func (f *dimFlags) dims() grid.Dims {
	return grid.Dims{Cols: f.cols, CellWidth: f.cellWidth, CellHeight: f.cellHeight, Gap: f.gap}
}

// loadRegistry reads the panel manifest, or falls back to the built-in demo
// panels when no manifest is given.
func loadRegistry(path string) (*registry.Registry, error) {
	if path != "" {
		return registry.LoadManifest(path)
	}
	return registry.New(
		registry.Panel{ID: "inventory", Title: "Inventory", X: 0, Y: 0, W: 4, H: 3},
		registry.Panel{ID: "news", Title: "News", X: 4, Y: 0, W: 4, H: 3},
		registry.Panel{ID: "vendors", Title: "Vendors", X: 8, Y: 0, W: 4, H: 3},
		registry.Panel{ID: "clan", Title: "Clan", X: 0, Y: 3, W: 6, H: 4},
		registry.Panel{ID: "activities", Title: "Activities", X: 6, Y: 3, W: 6, H: 4},
	)
}
