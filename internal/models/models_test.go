// ABOUTME: Unit tests for data models
// ABOUTME: Tests constructors, validators, clamps, and state defaults

package models

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewFillUp(t *testing.T) {
	f := NewFillUp(42.5, 5.89, FuelGasoline, true, 1234.5)

	if f.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if f.Date.IsZero() {
		t.Error("expected non-zero date")
	}
	if f.Liters != 42.5 {
		t.Errorf("expected 42.5 liters, got %f", f.Liters)
	}
	if f.PricePerL != 5.89 {
		t.Errorf("expected 5.89 price, got %f", f.PricePerL)
	}
	if f.FuelType != FuelGasoline {
		t.Errorf("expected gasoline, got %s", f.FuelType)
	}
	if !f.TankFull {
		t.Error("expected tank full")
	}
	if f.OdometerKm != 1234.5 {
		t.Errorf("expected odometer 1234.5, got %f", f.OdometerKm)
	}
}

func TestNewFillUp_UniqueIDs(t *testing.T) {
	f1 := NewFillUp(10, 5, FuelGasoline, false, 0)
	f2 := NewFillUp(10, 5, FuelGasoline, false, 0)

	if f1.ID == f2.ID {
		t.Error("expected unique IDs for different fill-ups")
	}
}

func TestNewFillUp_ClampsNegatives(t *testing.T) {
	f := NewFillUp(-5, -1, FuelDiesel, false, 0)

	if f.Liters != 0 {
		t.Errorf("expected liters clamped to 0, got %f", f.Liters)
	}
	if f.PricePerL != 0 {
		t.Errorf("expected price clamped to 0, got %f", f.PricePerL)
	}
}

func TestFillUpTotalCost(t *testing.T) {
	f := NewFillUp(40, 5.5, FuelEthanol, false, 0)
	if got := f.TotalCost(); got != 220 {
		t.Errorf("expected total 220, got %f", got)
	}
}

func TestParseFuelType(t *testing.T) {
	tests := []struct {
		in      string
		want    FuelType
		wantErr bool
	}{
		{"gasoline", FuelGasoline, false},
		{"ethanol", FuelEthanol, false},
		{"diesel", FuelDiesel, false},
		{"", "", true},
		{"kerosene", "", true},
		{"Gasoline", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFuelType(tt.in)
		if tt.wantErr && err == nil {
			t.Errorf("ParseFuelType(%q): expected error", tt.in)
		}
		if !tt.wantErr && (err != nil || got != tt.want) {
			t.Errorf("ParseFuelType(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestValidateFillUpInput(t *testing.T) {
	tests := []struct {
		name    string
		liters  float64
		price   float64
		wantErr bool
	}{
		{"valid", 40, 5.89, false},
		{"free_fuel", 10, 0, false},
		{"zero_liters", 0, 5, true},
		{"negative_liters", -3, 5, true},
		{"negative_price", 10, -0.01, true},
		{"nan_liters", math.NaN(), 5, true},
		{"inf_price", 10, math.Inf(1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFillUpInput(tt.liters, tt.price)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFillUpInput(%f, %f) error = %v, wantErr %v",
					tt.liters, tt.price, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{"valid_chicago", 41.8781, -87.6298, false},
		{"valid_origin", 0, 0, false},
		{"valid_poles", 90, 180, false},
		{"lat_too_high", 90.1, 0, true},
		{"lng_too_low", 0, -180.1, true},
		{"nan", math.NaN(), 0, true},
		{"inf", 0, math.Inf(-1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinates(tt.lat, tt.lng)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinates(%f, %f) error = %v, wantErr %v",
					tt.lat, tt.lng, err, tt.wantErr)
			}
		})
	}
}

func TestSortFillUpsByDate(t *testing.T) {
	now := time.Now()
	fillups := []FillUp{
		{ID: uuid.New(), Date: now},
		{ID: uuid.New(), Date: now.Add(-2 * time.Hour)},
		{ID: uuid.New(), Date: now.Add(-time.Hour)},
	}

	SortFillUpsByDate(fillups)

	for i := 1; i < len(fillups); i++ {
		if fillups[i].Date.Before(fillups[i-1].Date) {
			t.Fatalf("fillups not sorted ascending at index %d", i)
		}
	}
}

func TestNewVehicleState_Defaults(t *testing.T) {
	s := NewVehicleState()

	if s.TankCapacityL != DefaultTankCapacityL {
		t.Errorf("expected tank %d, got %f", DefaultTankCapacityL, s.TankCapacityL)
	}
	if s.FuelLeftL != DefaultTankCapacityL {
		t.Errorf("expected full tank, got %f", s.FuelLeftL)
	}
	if s.AvgKmPerL != DefaultAvgKmPerL {
		t.Errorf("expected avg %d, got %f", DefaultAvgKmPerL, s.AvgKmPerL)
	}
	if s.OdometerKm != 0 || s.SampleCount != 0 || len(s.FillUps) != 0 {
		t.Error("expected zero odometer, samples, and history")
	}
	if s.LastLowRangeAlertAt != nil {
		t.Error("expected no alert flag")
	}
}

func TestSetTankCapacity_Clamps(t *testing.T) {
	s := NewVehicleState()

	s.SetTankCapacity(5)
	if s.TankCapacityL != MinTankCapacityL {
		t.Errorf("expected clamp to %d, got %f", MinTankCapacityL, s.TankCapacityL)
	}

	s.SetTankCapacity(500)
	if s.TankCapacityL != MaxTankCapacityL {
		t.Errorf("expected clamp to %d, got %f", MaxTankCapacityL, s.TankCapacityL)
	}
}

func TestSetTankCapacity_CapsFuelLeft(t *testing.T) {
	s := NewVehicleState()
	s.FuelLeftL = 50

	s.SetTankCapacity(30)

	if s.FuelLeftL != 30 {
		t.Errorf("expected fuel capped at new capacity 30, got %f", s.FuelLeftL)
	}
}

func TestSetAverageEfficiency_Clamps(t *testing.T) {
	s := NewVehicleState()

	s.SetAverageEfficiency(1)
	if s.AvgKmPerL != MinAvgKmPerL {
		t.Errorf("expected clamp to %d, got %f", MinAvgKmPerL, s.AvgKmPerL)
	}

	s.SetAverageEfficiency(99)
	if s.AvgKmPerL != MaxAvgKmPerL {
		t.Errorf("expected clamp to %d, got %f", MaxAvgKmPerL, s.AvgKmPerL)
	}

	s.SetAverageEfficiency(12.5)
	if s.AvgKmPerL != 12.5 {
		t.Errorf("expected 12.5, got %f", s.AvgKmPerL)
	}
}

func TestSetLowRangeThreshold_Clamps(t *testing.T) {
	s := NewVehicleState()

	s.SetLowRangeThreshold(1)
	if s.LowRangeThresholdKm != MinLowRangeThresholdKm {
		t.Errorf("expected clamp to %d, got %f", MinLowRangeThresholdKm, s.LowRangeThresholdKm)
	}

	s.SetLowRangeThreshold(1000)
	if s.LowRangeThresholdKm != MaxLowRangeThresholdKm {
		t.Errorf("expected clamp to %d, got %f", MaxLowRangeThresholdKm, s.LowRangeThresholdKm)
	}
}

func TestLowRangeAlertFlag(t *testing.T) {
	s := NewVehicleState()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s.MarkLowRangeAlerted(at)
	if s.LastLowRangeAlertAt == nil || !s.LastLowRangeAlertAt.Equal(at) {
		t.Error("expected alert timestamp recorded")
	}

	s.ClearLowRangeAlert()
	if s.LastLowRangeAlertAt != nil {
		t.Error("expected alert flag cleared")
	}
}

func TestRangeKm(t *testing.T) {
	s := NewVehicleState()
	s.FuelLeftL = 20
	s.AvgKmPerL = 12

	if got := s.RangeKm(); got != 240 {
		t.Errorf("expected range 240, got %f", got)
	}
}

func TestReset(t *testing.T) {
	s := NewVehicleState()
	s.SetTankCapacity(60)
	s.OdometerKm = 1000
	s.FuelLeftL = 3
	s.AvgKmPerL = 15
	s.SampleCount = 4
	s.FillUps = []FillUp{*NewFillUp(40, 5, FuelGasoline, true, 900)}
	s.MarkLowRangeAlerted(time.Now())

	s.Reset()

	if s.OdometerKm != 0 {
		t.Errorf("expected odometer 0, got %f", s.OdometerKm)
	}
	if s.FuelLeftL != 60 {
		t.Errorf("expected full tank at configured capacity 60, got %f", s.FuelLeftL)
	}
	if s.AvgKmPerL != DefaultAvgKmPerL {
		t.Errorf("expected default avg, got %f", s.AvgKmPerL)
	}
	if s.SampleCount != 0 || len(s.FillUps) != 0 {
		t.Error("expected empty samples and history")
	}
	if s.LastLowRangeAlertAt != nil {
		t.Error("expected alert flag cleared")
	}
	if s.TankCapacityL != 60 {
		t.Errorf("expected tank capacity preserved, got %f", s.TankCapacityL)
	}
}

func TestClone_Independent(t *testing.T) {
	s := NewVehicleState()
	s.FillUps = []FillUp{*NewFillUp(40, 5, FuelGasoline, true, 100)}

	cp := s.Clone()
	cp.FillUps[0].Liters = 99
	cp.OdometerKm = 42

	if s.FillUps[0].Liters == 99 {
		t.Error("clone shares fill-up slice with original")
	}
	if s.OdometerKm == 42 {
		t.Error("clone shares scalar state with original")
	}
}
