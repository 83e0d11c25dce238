// ABOUTME: Reset command restoring factory defaults
// ABOUTME: Clears history, samples, and alert state after confirmation

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all tracking data to factory defaults",
	Long: `Reset fuel level, efficiency, odometer, and fill-up history.
Tank capacity is kept. This cannot be undone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			fmt.Print("Reset all fuel tracking data? [y/N] ")
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := engine.ResetAll(); err != nil {
			return fmt.Errorf("failed to reset: %w", err)
		}

		color.Green("✓ Reset to factory defaults")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(resetCmd)
}
