// ABOUTME: Set command for vehicle parameters
// ABOUTME: Adjusts tank capacity, average efficiency, and low-range threshold

package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harper/fueltrack/internal/models"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Adjust vehicle parameters",
	Long: `Adjust vehicle parameters. Values outside the supported range
are clamped.

Commands:
  tank <liters>       - Tank capacity (10-120 L)
  avg <km-per-liter>  - Average efficiency (4-30 km/L)
  alert <km>          - Low-range warning threshold (10-300 km)

Examples:
  fueltrack set tank 55
  fueltrack set avg 12.5
  fueltrack set alert 80`,
}

var setTankCmd = &cobra.Command{
	Use:   "tank <liters>",
	Short: "Set tank capacity in liters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		liters, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid capacity: %w", err)
		}

		if err := engine.SetTankCapacity(liters); err != nil {
			return fmt.Errorf("failed to set tank capacity: %w", err)
		}

		state := engine.Snapshot()
		if state.TankCapacityL != liters {
			color.Yellow("Capacity clamped to %.0f L (supported range %.0f-%.0f)",
				state.TankCapacityL, float64(models.MinTankCapacityL), float64(models.MaxTankCapacityL))
		} else {
			color.Green("✓ Tank capacity set to %.0f L", state.TankCapacityL)
		}
		return nil
	},
}

var setAvgCmd = &cobra.Command{
	Use:   "avg <km-per-liter>",
	Short: "Set average efficiency in km per liter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kmPerL, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid efficiency: %w", err)
		}

		if err := engine.SetAverageEfficiency(kmPerL); err != nil {
			return fmt.Errorf("failed to set efficiency: %w", err)
		}

		state := engine.Snapshot()
		if state.AvgKmPerL != kmPerL {
			color.Yellow("Efficiency clamped to %.1f km/L (supported range %.0f-%.0f)",
				state.AvgKmPerL, float64(models.MinAvgKmPerL), float64(models.MaxAvgKmPerL))
		} else {
			color.Green("✓ Average efficiency set to %.1f km/L", state.AvgKmPerL)
		}
		return nil
	},
}

var setAlertCmd = &cobra.Command{
	Use:   "alert <km>",
	Short: "Set the low-range warning threshold in km",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid threshold: %w", err)
		}

		if err := engine.SetLowRangeThreshold(km); err != nil {
			return fmt.Errorf("failed to set threshold: %w", err)
		}

		state := engine.Snapshot()
		if state.LowRangeThresholdKm != km {
			color.Yellow("Threshold clamped to %.0f km (supported range %.0f-%.0f)",
				state.LowRangeThresholdKm, float64(models.MinLowRangeThresholdKm), float64(models.MaxLowRangeThresholdKm))
		} else {
			color.Green("✓ Low-range threshold set to %.0f km", state.LowRangeThresholdKm)
		}
		return nil
	},
}

func init() {
	setCmd.AddCommand(setTankCmd)
	setCmd.AddCommand(setAvgCmd)
	setCmd.AddCommand(setAlertCmd)

	rootCmd.AddCommand(setCmd)
}
