// ABOUTME: Drive command recording driven distance
// ABOUTME: Accepts a km literal or two coordinate pairs for GPS segments

package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harper/fueltrack/internal/geo"
	"github.com/harper/fueltrack/internal/models"
	"github.com/spf13/cobra"
)

// maxSegmentKm drops GPS segments longer than a plausible sampling interval.
const maxSegmentKm = 3

var driveCmd = &cobra.Command{
	Use:     "drive <km> | drive <lat1> <lng1> <lat2> <lng2>",
	Aliases: []string{"d"},
	Short:   "Record driven distance",
	Long: `Record driven distance and deplete estimated fuel.

With one argument, the distance in kilometers is recorded directly.
With four arguments, the distance between two GPS coordinates is
computed. Coordinate segments are only accepted when they fall
between 0 and 3 km, the plausible range for consecutive GPS samples.

Examples:
  fueltrack drive 12.5
  fueltrack drive 41.8781 -87.6298 41.8902 -87.6250`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 && len(args) != 4 {
			return fmt.Errorf("expected 1 argument (km) or 4 arguments (two coordinate pairs)")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var km float64

		if len(args) == 1 {
			var err error
			km, err = strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid distance: %w", err)
			}
			if km <= 0 {
				return fmt.Errorf("distance must be positive")
			}
		} else {
			coords := make([]float64, 4)
			for i, arg := range args {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid coordinate %q: %w", arg, err)
				}
				coords[i] = v
			}
			if err := models.ValidateCoordinates(coords[0], coords[1]); err != nil {
				return err
			}
			if err := models.ValidateCoordinates(coords[2], coords[3]); err != nil {
				return err
			}

			km = geo.HaversineKm(
				geo.Point{Lat: coords[0], Lng: coords[1]},
				geo.Point{Lat: coords[2], Lng: coords[3]},
			)
			if km <= 0 || km >= maxSegmentKm {
				color.Yellow("Segment of %.2f km skipped (outside 0-%.0f km sampling window)", km, float64(maxSegmentKm))
				return nil
			}
		}

		if err := engine.AddDistance(km); err != nil {
			return fmt.Errorf("failed to record distance: %w", err)
		}

		state := engine.Snapshot()
		color.Green("✓ Recorded %.2f km", km)
		fmt.Printf("  Odometer %.1f km, %.1f L left (~%.0f km range)\n",
			state.OdometerKm, state.FuelLeftL, state.RangeKm())

		if state.RangeKm() < state.LowRangeThresholdKm {
			color.Red("  ⚠ Estimated range below %.0f km", state.LowRangeThresholdKm)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(driveCmd)
}
