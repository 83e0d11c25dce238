// ABOUTME: Fill-up command registering fuel purchases
// ABOUTME: Pushes the new record to the remote endpoint when signed in

package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harper/fueltrack/internal/models"
	"github.com/harper/fueltrack/internal/ui"
	"github.com/spf13/cobra"
)

var fillupCmd = &cobra.Command{
	Use:     "fillup <liters> <price-per-liter>",
	Aliases: []string{"f"},
	Short:   "Record a fuel purchase",
	Long: `Record a fuel purchase. A full tank closes a full-to-full
efficiency sample and refines the running average.

Examples:
  fueltrack fillup 40 5.89 --type gasoline --full
  fueltrack fillup 15 4.29 --type ethanol`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		liters, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid liters: %w", err)
		}
		pricePerL, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid price: %w", err)
		}

		typeStr, _ := cmd.Flags().GetString("type")
		fuelType, err := models.ParseFuelType(typeStr)
		if err != nil {
			return err
		}
		tankFull, _ := cmd.Flags().GetBool("full")

		f, err := engine.RegisterFillUp(liters, pricePerL, fuelType, tankFull)
		if err != nil {
			return fmt.Errorf("failed to register fill-up: %w", err)
		}

		color.Green("✓ Registered fill-up")
		fmt.Printf("  %s\n", ui.FormatFillUp(f))

		state := engine.Snapshot()
		fmt.Printf("  %.1f L in tank, avg %.1f km/L (%d samples)\n",
			state.FuelLeftL, state.AvgKmPerL, state.SampleCount)

		if reconciler != nil {
			if err := reconciler.Push(cmd.Context(), *f); err != nil {
				color.Yellow("  Sync pending: %v", err)
			}
		}
		return nil
	},
}

func init() {
	fillupCmd.Flags().StringP("type", "t", "gasoline", "fuel type (gasoline, ethanol, diesel)")
	fillupCmd.Flags().BoolP("full", "f", false, "tank was filled to the top")

	rootCmd.AddCommand(fillupCmd)
}
