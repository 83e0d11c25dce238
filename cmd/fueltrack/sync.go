// ABOUTME: Sync subcommand for remote reconciliation
// ABOUTME: Provides status, pull, login, and logout commands

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Manage remote sync for fill-up history",
	Long: `Sync your fill-up history with a remote endpoint.

Commands:
  status  - Show sync configuration and pending pushes
  pull    - Replace local history with the remote copy
  login   - Configure remote credentials
  logout  - Sign out and reset local tracking data

Fill-ups and deletions sync automatically on every write when
signed in. Pull replaces the entire local history and recomputes
efficiency from it.

Examples:
  fueltrack sync login --server https://sync.example.com --key <api-key> --user <user-id>
  fueltrack sync pull
  fueltrack sync status`,
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Server == "" {
			color.Yellow("Status: Not configured")
			fmt.Println("Run 'fueltrack sync login' to configure a remote endpoint.")
			return nil
		}

		fmt.Printf("Server: %s\n", cfg.Server)

		userID, ok := cfg.CurrentUserID()
		if !ok {
			color.Yellow("\nStatus: Signed out")
			fmt.Println("Run 'fueltrack sync login' to sign in.")
			return nil
		}

		fmt.Printf("User ID: %s\n", userID)
		color.Green("Status: Signed in")

		if reconciler != nil {
			if pending := reconciler.PendingCount(); pending > 0 {
				color.Yellow("\n%d pushes pending, they retry before the next pull", pending)
			}
		}
		fmt.Println("\nFill-ups sync automatically on every write.")
		return nil
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Replace local history with the remote copy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if reconciler == nil {
			return fmt.Errorf("sync is not configured, run 'fueltrack sync login' first")
		}

		if err := reconciler.Pull(cmd.Context()); err != nil {
			return fmt.Errorf("pull failed: %w", err)
		}

		state := engine.Snapshot()
		color.Green("✓ Pulled %d fill-ups", len(state.FillUps))
		fmt.Printf("  avg %.1f km/L (%d samples), %.1f L in tank\n",
			state.AvgKmPerL, state.SampleCount, state.FuelLeftL)
		return nil
	},
}

var syncLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Configure remote credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, _ := cmd.Flags().GetString("server")
		key, _ := cmd.Flags().GetString("key")
		user, _ := cmd.Flags().GetString("user")

		if server != "" {
			cfg.Server = server
		}
		if key != "" {
			cfg.APIKey = key
		}
		if user != "" {
			cfg.UserID = user
		}

		if cfg.Server == "" || cfg.UserID == "" {
			return fmt.Errorf("both --server and --user are required")
		}

		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save credentials: %w", err)
		}

		color.Green("✓ Signed in as %s", cfg.UserID)
		fmt.Println("Run 'fueltrack sync pull' to fetch your history.")
		return nil
	},
}

var syncLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and reset local tracking data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := cfg.CurrentUserID(); !ok {
			fmt.Println("Already signed out.")
			return nil
		}

		cfg.UserID = ""
		cfg.APIKey = ""
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		// Local data belongs to the signed-out account.
		if err := engine.ResetAll(); err != nil {
			return fmt.Errorf("failed to reset local data: %w", err)
		}

		color.Green("✓ Signed out, local data reset")
		return nil
	},
}

func init() {
	syncLoginCmd.Flags().String("server", "", "remote endpoint base URL")
	syncLoginCmd.Flags().String("key", "", "API key for the remote endpoint")
	syncLoginCmd.Flags().String("user", "", "account user id")

	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncPullCmd)
	syncCmd.AddCommand(syncLoginCmd)
	syncCmd.AddCommand(syncLogoutCmd)

	rootCmd.AddCommand(syncCmd)
}
