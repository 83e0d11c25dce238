// ABOUTME: Terminal UI formatting utilities
// ABOUTME: Provides human-readable output for fill-ups and vehicle status

package ui

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harper/fueltrack/internal/models"
)

// FormatFillUp formats a fill-up for terminal display.
func FormatFillUp(f *models.FillUp) string {
	if f == nil {
		return color.New(color.Faint).Sprint("(invalid fill-up)")
	}

	fill := "partial"
	if f.TankFull {
		fill = color.GreenString("full")
	}

	relTime := FormatRelativeTime(f.Date)
	return fmt.Sprintf("%s %.1f L @ %.2f/L (%s, %s) - %s",
		color.CyanString(string(f.FuelType)),
		f.Liters,
		f.PricePerL,
		fill,
		FormatMoney(f.TotalCost()),
		color.New(color.Faint).Sprint(relTime))
}

// FormatFillUpForList formats a fill-up as a list row with its id prefix.
func FormatFillUpForList(f *models.FillUp) string {
	if f == nil {
		return color.New(color.Faint).Sprint("  (invalid fill-up)")
	}

	fill := "partial"
	if f.TankFull {
		fill = color.GreenString("full")
	}

	shortID := f.ID.String()[:8]
	timeStr := f.Date.Format("Jan 2, 3:04 PM")
	return fmt.Sprintf("  %s %s %.1f L @ %.2f/L (%s, odo %.0f km) - %s",
		color.New(color.Faint).Sprint(shortID),
		color.CyanString(string(f.FuelType)),
		f.Liters,
		f.PricePerL,
		fill,
		f.OdometerKm,
		timeStr)
}

// FormatStatus formats the vehicle state for the status command.
func FormatStatus(state *models.VehicleState) string {
	if state == nil {
		return color.New(color.Faint).Sprint("(no vehicle state)")
	}

	rangeKm := state.RangeKm()
	rangeStr := fmt.Sprintf("%.0f km", rangeKm)
	if rangeKm < state.LowRangeThresholdKm {
		rangeStr = color.RedString("%.0f km (low)", rangeKm)
	}

	return fmt.Sprintf("%s %.1f / %.1f L\n%s %.1f km/L (%d samples)\n%s %s\n%s %.0f km",
		color.New(color.Bold).Sprint("Fuel:"),
		state.FuelLeftL,
		state.TankCapacityL,
		color.New(color.Bold).Sprint("Efficiency:"),
		state.AvgKmPerL,
		state.SampleCount,
		color.New(color.Bold).Sprint("Range:"),
		rangeStr,
		color.New(color.Bold).Sprint("Odometer:"),
		state.OdometerKm)
}

// FormatMoney formats a currency amount.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// FormatRelativeTime formats a time as relative to now.
func FormatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	// Handle future times (clock skew, bad data)
	if diff < 0 {
		return color.YellowString("in the future")
	}

	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	}
	if diff < 24*time.Hour {
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := int(diff.Hours() / 24)
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
