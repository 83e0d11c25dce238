// ABOUTME: Export command for fill-up history
// ABOUTME: Writes JSON or CSV to stdout or a file

package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/harper/fueltrack/internal/models"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"e"},
	Short:   "Export fill-up history in various formats",
	Long: `Export the fill-up history as JSON or CSV, oldest first.

Examples:
  fueltrack export --format json
  fueltrack export --format csv --output fillups.csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format != "json" && format != "csv" {
			return fmt.Errorf("unsupported format: %s (use 'json' or 'csv')", format)
		}

		state := engine.Snapshot()
		models.SortFillUpsByDate(state.FillUps)

		var out io.Writer = os.Stdout
		if path, _ := cmd.Flags().GetString("output"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		switch format {
		case "json":
			return exportJSON(out, state.FillUps)
		case "csv":
			return exportCSV(out, state.FillUps)
		}
		return nil
	},
}

func exportJSON(w io.Writer, fillups []models.FillUp) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fillups)
}

func exportCSV(w io.Writer, fillups []models.FillUp) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"id", "date", "liters", "price_per_l", "fuel_type", "tank_full", "odometer_km", "total_cost"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range fillups {
		f := &fillups[i]
		record := []string{
			f.ID.String(),
			f.Date.Format(time.RFC3339),
			strconv.FormatFloat(f.Liters, 'f', -1, 64),
			strconv.FormatFloat(f.PricePerL, 'f', -1, 64),
			string(f.FuelType),
			strconv.FormatBool(f.TankFull),
			strconv.FormatFloat(f.OdometerKm, 'f', -1, 64),
			strconv.FormatFloat(f.TotalCost(), 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	exportCmd.Flags().StringP("format", "F", "json", "output format (json, csv)")
	exportCmd.Flags().StringP("output", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(exportCmd)
}
