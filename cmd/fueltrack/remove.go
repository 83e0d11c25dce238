// ABOUTME: Fill-up remove command
// ABOUTME: Deletes a record by id prefix and recomputes efficiency

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harper/fueltrack/internal/models"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a fill-up and recompute efficiency",
	Long: `Remove a fill-up by its id or a unique id prefix (as shown by
'fueltrack list'). Efficiency and fuel level are recomputed from the
remaining history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := resolveFillUpID(args[0])
		if err != nil {
			return err
		}

		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			fmt.Printf("Remove fill-up %s? [y/N] ", target.ID.String()[:8])
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := engine.DeleteFillUp(target.ID); err != nil {
			return fmt.Errorf("failed to remove fill-up: %w", err)
		}

		if reconciler != nil {
			if err := reconciler.Delete(cmd.Context(), target.ID); err != nil {
				color.Yellow("⚠ Remote delete failed: %v", err)
			}
		}

		color.Green("✓ Removed fill-up %s", target.ID.String()[:8])

		state := engine.Snapshot()
		fmt.Printf("  avg %.1f km/L (%d samples), %.1f L in tank\n",
			state.AvgKmPerL, state.SampleCount, state.FuelLeftL)
		return nil
	},
}

// resolveFillUpID matches a full uuid or a unique id prefix against history.
func resolveFillUpID(arg string) (*models.FillUp, error) {
	state := engine.Snapshot()

	if id, err := uuid.Parse(arg); err == nil {
		for i := range state.FillUps {
			if state.FillUps[i].ID == id {
				return &state.FillUps[i], nil
			}
		}
		return nil, fmt.Errorf("fill-up %s not found", arg)
	}

	var match *models.FillUp
	for i := range state.FillUps {
		if strings.HasPrefix(state.FillUps[i].ID.String(), strings.ToLower(arg)) {
			if match != nil {
				return nil, fmt.Errorf("id prefix %q is ambiguous", arg)
			}
			match = &state.FillUps[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no fill-up matches %q", arg)
	}
	return match, nil
}

func init() {
	removeCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(removeCmd)
}
