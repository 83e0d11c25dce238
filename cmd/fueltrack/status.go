// ABOUTME: Status command showing fuel level, efficiency, and range
// ABOUTME: Warns when estimated range drops below the configured threshold

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/fueltrack/internal/ui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"s"},
	Short:   "Show current fuel level, efficiency, and range",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state := engine.Snapshot()
		fmt.Println(ui.FormatStatus(state))

		if state.RangeKm() < state.LowRangeThresholdKm {
			color.Red("\n⚠ Estimated range below %.0f km, consider refueling", state.LowRangeThresholdKm)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
