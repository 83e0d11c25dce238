// ABOUTME: List command showing fill-up history
// ABOUTME: Prints records newest first with short ids for removal

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/fueltrack/internal/models"
	"github.com/harper/fueltrack/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recorded fill-ups, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state := engine.Snapshot()
		if len(state.FillUps) == 0 {
			fmt.Println(color.New(color.Faint).Sprint("No fill-ups recorded yet."))
			return nil
		}

		models.SortFillUpsByDate(state.FillUps)

		var total float64
		for i := len(state.FillUps) - 1; i >= 0; i-- {
			f := &state.FillUps[i]
			fmt.Println(ui.FormatFillUpForList(f))
			total += f.TotalCost()
		}

		fmt.Printf("\n%d fill-ups, %s total\n", len(state.FillUps), ui.FormatMoney(total))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
