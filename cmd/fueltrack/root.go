// ABOUTME: Root Cobra command and global wiring
// ABOUTME: Opens config, storage backend, fuel engine, and optional sync

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/harper/fueltrack/internal/config"
	"github.com/harper/fueltrack/internal/fuel"
	"github.com/harper/fueltrack/internal/storage"
	"github.com/harper/fueltrack/internal/sync"
	"github.com/spf13/cobra"
)

var (
	cfg        *config.Config
	store      storage.StateRepository
	engine     *fuel.Engine
	reconciler *sync.Reconciler
)

var rootCmd = &cobra.Command{
	Use:   "fueltrack",
	Short: "Vehicle fuel tracking from the command line",
	Long: `
███████╗██╗   ██╗███████╗██╗  ████████╗██████╗  █████╗  ██████╗██╗  ██╗
██╔════╝██║   ██║██╔════╝██║  ╚══██╔══╝██╔══██╗██╔══██╗██╔════╝██║ ██╔╝
█████╗  ██║   ██║█████╗  ██║     ██║   ██████╔╝███████║██║     █████╔╝
██╔══╝  ██║   ██║██╔══╝  ██║     ██║   ██╔══██╗██╔══██║██║     ██╔═██╗
██║     ╚██████╔╝███████╗███████╗██║   ██║  ██║██║  ██║╚██████╗██║  ██╗
╚═╝      ╚═════╝ ╚══════╝╚══════╝╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝

       Track fill-ups, fuel level, and efficiency over time

Examples:
  fueltrack fillup 40 5.89 --type gasoline --full
  fueltrack drive 12.5
  fueltrack status
  fueltrack list`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		store, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}

		engine, err = fuel.NewEngine(store)
		if err != nil {
			return fmt.Errorf("failed to initialize fuel engine: %w", err)
		}

		if cfg.Server != "" {
			remote := sync.NewHTTPStore(cfg.Server, cfg.APIKey, nil)
			log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
			reconciler = sync.NewReconciler(engine, remote, cfg, log)
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}
