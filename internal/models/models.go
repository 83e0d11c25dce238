// ABOUTME: Core data models for fill-ups and vehicle fuel state
// ABOUTME: Provides constructors, clamp mutations, and input validation

package models

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// FuelType is the closed set of fuels a fill-up can record.
type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelEthanol  FuelType = "ethanol"
	FuelDiesel   FuelType = "diesel"
)

// ParseFuelType converts a string to a FuelType.
func ParseFuelType(s string) (FuelType, error) {
	switch FuelType(s) {
	case FuelGasoline, FuelEthanol, FuelDiesel:
		return FuelType(s), nil
	}
	return "", fmt.Errorf("unknown fuel type %q (want gasoline, ethanol, or diesel)", s)
}

// FillUp is one refueling event. The ID is generated locally and is the
// reconciliation key shared with the remote store; remote rows carry their own
// row id but are always matched by this one.
type FillUp struct {
	ID         uuid.UUID `json:"id"`
	Date       time.Time `json:"date"`
	Liters     float64   `json:"liters"`
	PricePerL  float64   `json:"price_per_l"`
	FuelType   FuelType  `json:"fuel_type"`
	TankFull   bool      `json:"tank_full"`
	OdometerKm float64   `json:"odometer_km"`
}

// NewFillUp creates a fill-up stamped with a fresh UUID and the current time.
// Liters and price are clamped to >= 0; callers are expected to validate first.
func NewFillUp(liters, pricePerL float64, fuelType FuelType, tankFull bool, odometerKm float64) *FillUp {
	return &FillUp{
		ID:         uuid.New(),
		Date:       time.Now(),
		Liters:     math.Max(0, liters),
		PricePerL:  math.Max(0, pricePerL),
		FuelType:   fuelType,
		TankFull:   tankFull,
		OdometerKm: odometerKm,
	}
}

// TotalCost returns liters * price per liter.
func (f *FillUp) TotalCost() float64 {
	return f.Liters * f.PricePerL
}

// ValidateFillUpInput rejects non-positive liters and negative prices.
// This is the caller-level validation; constructors only clamp.
func ValidateFillUpInput(liters, pricePerL float64) error {
	if math.IsNaN(liters) || math.IsInf(liters, 0) || liters <= 0 {
		return fmt.Errorf("liters must be a positive number")
	}
	if math.IsNaN(pricePerL) || math.IsInf(pricePerL, 0) || pricePerL < 0 {
		return fmt.Errorf("price per liter cannot be negative")
	}
	return nil
}

// ValidateCoordinates checks if latitude and longitude are within valid ranges.
func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return fmt.Errorf("coordinates cannot be NaN")
	}
	if math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return fmt.Errorf("coordinates cannot be infinite")
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}

// SortFillUpsByDate sorts a fill-up slice ascending by date, in place.
// Insertion order of the history is not guaranteed to be date order.
func SortFillUpsByDate(fillups []FillUp) {
	sort.SliceStable(fillups, func(i, j int) bool {
		return fillups[i].Date.Before(fillups[j].Date)
	})
}

// Clamp bounds for vehicle state configuration.
const (
	MinTankCapacityL = 10
	MaxTankCapacityL = 120

	MinAvgKmPerL = 4
	MaxAvgKmPerL = 30

	MinLowRangeThresholdKm = 10
	MaxLowRangeThresholdKm = 300
)

// Factory defaults for a fresh vehicle state.
const (
	DefaultTankCapacityL       = 50
	DefaultAvgKmPerL           = 11
	DefaultLowRangeThresholdKm = 60
)

// VehicleState is the authoritative fuel record: one per user, persisted across
// sessions. FuelLeftL and AvgKmPerL are estimates derivable from the fill-up
// history plus the odometer.
type VehicleState struct {
	TankCapacityL       float64    `json:"tank_capacity_l"`
	OdometerKm          float64    `json:"odometer_km"`
	FuelLeftL           float64    `json:"fuel_left_l"`
	AvgKmPerL           float64    `json:"avg_km_per_l"`
	SampleCount         int        `json:"sample_count"`
	FillUps             []FillUp   `json:"fillups"`
	LowRangeThresholdKm float64    `json:"low_range_threshold_km"`
	LastLowRangeAlertAt *time.Time `json:"last_low_range_alert_at,omitempty"`
}

// NewVehicleState returns a state at factory defaults: zero odometer, tank
// full at default capacity, default efficiency guess, empty history.
func NewVehicleState() *VehicleState {
	return &VehicleState{
		TankCapacityL:       DefaultTankCapacityL,
		FuelLeftL:           DefaultTankCapacityL,
		AvgKmPerL:           DefaultAvgKmPerL,
		LowRangeThresholdKm: DefaultLowRangeThresholdKm,
	}
}

// SetTankCapacity clamps the capacity to [10, 120] liters and caps the fuel
// estimate at the new capacity.
func (s *VehicleState) SetTankCapacity(liters float64) {
	s.TankCapacityL = clamp(liters, MinTankCapacityL, MaxTankCapacityL)
	s.FuelLeftL = math.Min(s.FuelLeftL, s.TankCapacityL)
}

// SetAverageEfficiency clamps a manual efficiency override to [4, 30] km/L.
// The override holds until the next fill-up or recompute.
func (s *VehicleState) SetAverageEfficiency(kmPerL float64) {
	s.AvgKmPerL = clamp(kmPerL, MinAvgKmPerL, MaxAvgKmPerL)
}

// SetLowRangeThreshold clamps the alert threshold to [10, 300] km.
func (s *VehicleState) SetLowRangeThreshold(km float64) {
	s.LowRangeThresholdKm = clamp(km, MinLowRangeThresholdKm, MaxLowRangeThresholdKm)
}

// MarkLowRangeAlerted records that a low-range alert was shown, suppressing
// repeats until the flag is cleared.
func (s *VehicleState) MarkLowRangeAlerted(at time.Time) {
	t := at
	s.LastLowRangeAlertAt = &t
}

// ClearLowRangeAlert clears the alert suppression flag.
func (s *VehicleState) ClearLowRangeAlert() {
	s.LastLowRangeAlertAt = nil
}

// RangeKm returns the estimated distance left on the current fuel.
func (s *VehicleState) RangeKm() float64 {
	return s.FuelLeftL * s.AvgKmPerL
}

// Reset returns every field to factory defaults, keeping the configured tank
// capacity. Used on sign-out or account switch; never partial.
func (s *VehicleState) Reset() {
	s.OdometerKm = 0
	s.FuelLeftL = s.TankCapacityL
	s.AvgKmPerL = DefaultAvgKmPerL
	s.SampleCount = 0
	s.FillUps = nil
	s.LastLowRangeAlertAt = nil
}

// Clone returns a deep copy of the state.
func (s *VehicleState) Clone() *VehicleState {
	cp := *s
	cp.FillUps = append([]FillUp(nil), s.FillUps...)
	if s.LastLowRangeAlertAt != nil {
		t := *s.LastLowRangeAlertAt
		cp.LastLowRangeAlertAt = &t
	}
	return &cp
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
