// ABOUTME: Unit tests for terminal UI formatting
// ABOUTME: Tests human-readable output for fill-ups and vehicle status

package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harper/fueltrack/internal/models"
)

func sampleFillUp() *models.FillUp {
	return &models.FillUp{
		ID:         uuid.New(),
		Date:       time.Now(),
		Liters:     40,
		PricePerL:  5.89,
		FuelType:   models.FuelGasoline,
		TankFull:   true,
		OdometerKm: 500,
	}
}

func TestFormatFillUp(t *testing.T) {
	f := sampleFillUp()
	output := FormatFillUp(f)
	if !strings.Contains(output, "gasoline") {
		t.Error("expected output to contain fuel type")
	}
	if !strings.Contains(output, "40.0 L") {
		t.Error("expected output to contain liters")
	}
	if !strings.Contains(output, "full") {
		t.Error("expected output to mark a full tank")
	}
	if !strings.Contains(output, "$235.60") {
		t.Errorf("expected output to contain total cost, got %q", output)
	}
}

func TestFormatFillUp_Partial(t *testing.T) {
	f := sampleFillUp()
	f.TankFull = false
	output := FormatFillUp(f)
	if !strings.Contains(output, "partial") {
		t.Error("expected output to mark a partial fill")
	}
}

func TestFormatFillUp_Nil(t *testing.T) {
	output := FormatFillUp(nil)
	if !strings.Contains(output, "invalid fill-up") {
		t.Errorf("expected nil fill-up message, got %q", output)
	}
}

func TestFormatFillUpForList(t *testing.T) {
	f := sampleFillUp()
	output := FormatFillUpForList(f)
	if !strings.Contains(output, f.ID.String()[:8]) {
		t.Error("expected output to contain short id")
	}
	if !strings.Contains(output, "odo 500 km") {
		t.Errorf("expected output to contain odometer, got %q", output)
	}
}

func TestFormatStatus(t *testing.T) {
	state := models.NewVehicleState()
	output := FormatStatus(state)
	if !strings.Contains(output, "50.0 / 50.0 L") {
		t.Errorf("expected fuel line, got %q", output)
	}
	if !strings.Contains(output, "11.0 km/L") {
		t.Errorf("expected efficiency line, got %q", output)
	}
	if !strings.Contains(output, "550 km") {
		t.Errorf("expected range line, got %q", output)
	}
}

func TestFormatStatus_LowRange(t *testing.T) {
	state := models.NewVehicleState()
	state.FuelLeftL = 4
	output := FormatStatus(state)
	if !strings.Contains(output, "low") {
		t.Errorf("expected low range marker, got %q", output)
	}
}

func TestFormatStatus_Nil(t *testing.T) {
	output := FormatStatus(nil)
	if !strings.Contains(output, "no vehicle state") {
		t.Errorf("expected nil state message, got %q", output)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", time.Now(), "just now"},
		{"minutes", time.Now().Add(-5 * time.Minute), "5 minutes ago"},
		{"one minute", time.Now().Add(-90 * time.Second), "1 minute ago"},
		{"hours", time.Now().Add(-3 * time.Hour), "3 hours ago"},
		{"one hour", time.Now().Add(-90 * time.Minute), "1 hour ago"},
		{"days", time.Now().Add(-48 * time.Hour), "2 days ago"},
		{"one day", time.Now().Add(-25 * time.Hour), "1 day ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRelativeTime(tt.t)
			if got != tt.want {
				t.Errorf("FormatRelativeTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatRelativeTime_Future(t *testing.T) {
	got := FormatRelativeTime(time.Now().Add(time.Hour))
	if !strings.Contains(got, "future") {
		t.Errorf("expected future marker, got %q", got)
	}
}
