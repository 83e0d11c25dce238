// ABOUTME: The fuel-state engine: distance accrual, fill-up registration, reset
// ABOUTME: Owns the vehicle state, saves on every mutation, notifies observers

package fuel

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harper/fueltrack/internal/models"
	"github.com/harper/fueltrack/internal/storage"
)

// ErrFillUpNotFound is returned when deleting a fill-up that does not exist.
var ErrFillUpNotFound = errors.New("fill-up not found")

// Event identifies a state change delivered to subscribers.
type Event int

const (
	// EventStateChanged fires after any successful mutation.
	EventStateChanged Event = iota
	// EventLowRange fires when the estimated range drops below the threshold
	// and no alert is currently suppressing it.
	EventLowRange
)

// Engine owns the singleton vehicle state. Every mutation is written through
// to the repository before the call returns, so the most recent change
// survives an immediate process kill. Methods are safe for concurrent use;
// mutations are serialized.
type Engine struct {
	mu          sync.Mutex
	state       *models.VehicleState
	store       storage.StateRepository
	subscribers []func(Event)
}

// NewEngine loads persisted state from the repository, falling back to
// factory defaults on first run.
func NewEngine(store storage.StateRepository) (*Engine, error) {
	state, err := store.Load()
	if errors.Is(err, storage.ErrNotFound) {
		state = models.NewVehicleState()
		if err := store.Save(state); err != nil {
			return nil, fmt.Errorf("save initial state: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	return &Engine{state: state, store: store}, nil
}

// Subscribe registers an observer for engine events. Observers are invoked
// after the mutation is durable, outside the engine lock.
func (e *Engine) Subscribe(fn func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subscribers = append(e.subscribers, fn)
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() *models.VehicleState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// mutate runs fn on the state under the lock, persists, and then notifies.
// fn returns any extra events beyond EventStateChanged.
func (e *Engine) mutate(fn func(s *models.VehicleState) []Event) error {
	e.mu.Lock()
	extra := fn(e.state)
	saveErr := e.store.Save(e.state)
	subs := append([]func(Event){}, e.subscribers...)
	e.mu.Unlock()

	events := append([]Event{EventStateChanged}, extra...)
	for _, fn := range subs {
		for _, ev := range events {
			fn(ev)
		}
	}

	if saveErr != nil {
		return fmt.Errorf("save state: %w", saveErr)
	}
	return nil
}

// SetTankCapacity clamps and applies a new tank capacity.
func (e *Engine) SetTankCapacity(liters float64) error {
	return e.mutate(func(s *models.VehicleState) []Event {
		s.SetTankCapacity(liters)
		return nil
	})
}

// SetAverageEfficiency applies a manual efficiency override, clamped.
func (e *Engine) SetAverageEfficiency(kmPerL float64) error {
	return e.mutate(func(s *models.VehicleState) []Event {
		s.SetAverageEfficiency(kmPerL)
		return nil
	})
}

// SetLowRangeThreshold clamps and applies a new low-range alert threshold.
func (e *Engine) SetLowRangeThreshold(km float64) error {
	return e.mutate(func(s *models.VehicleState) []Event {
		s.SetLowRangeThreshold(km)
		return nil
	})
}

// MarkLowRangeAlerted suppresses further low-range alerts until cleared.
func (e *Engine) MarkLowRangeAlerted() error {
	return e.mutate(func(s *models.VehicleState) []Event {
		s.MarkLowRangeAlerted(time.Now())
		return nil
	})
}

// ClearLowRangeAlert re-arms the low-range alert.
func (e *Engine) ClearLowRangeAlert() error {
	return e.mutate(func(s *models.VehicleState) []Event {
		s.ClearLowRangeAlert()
		return nil
	})
}

// AddDistance consumes one validated distance segment: advances the odometer
// and depletes the fuel estimate, floored at zero. Non-finite or non-positive
// segments are silently ignored; plausibility filtering (GPS noise, teleport
// jumps) is the caller's job.
func (e *Engine) AddDistance(km float64) error {
	if math.IsNaN(km) || math.IsInf(km, 0) || km <= 0 {
		return nil
	}
	return e.mutate(func(s *models.VehicleState) []Event {
		used := km / math.Max(1, s.AvgKmPerL)
		s.OdometerKm += km
		s.FuelLeftL = math.Max(0, s.FuelLeftL-used)

		if s.RangeKm() < s.LowRangeThresholdKm && s.LastLowRangeAlertAt == nil {
			s.MarkLowRangeAlerted(time.Now())
			return []Event{EventLowRange}
		}
		return nil
	})
}

// RegisterFillUp validates, stamps, and appends a new fill-up, updates the
// fuel estimate, and re-derives the efficiency average from the full history.
// A tank-full entry resets the fuel estimate to capacity, discarding
// accumulated estimation drift.
func (e *Engine) RegisterFillUp(liters, pricePerL float64, fuelType models.FuelType, tankFull bool) (*models.FillUp, error) {
	if err := models.ValidateFillUpInput(liters, pricePerL); err != nil {
		return nil, err
	}

	var fill *models.FillUp
	err := e.mutate(func(s *models.VehicleState) []Event {
		fill = models.NewFillUp(liters, pricePerL, fuelType, tankFull, s.OdometerKm)

		if tankFull {
			s.FuelLeftL = s.TankCapacityL
		} else {
			s.FuelLeftL = math.Min(s.FuelLeftL+fill.Liters, s.TankCapacityL)
		}

		s.FillUps = append(s.FillUps, *fill)

		res := Recompute(s.FillUps, s.OdometerKm, s.TankCapacityL, s.AvgKmPerL, s.FuelLeftL)
		s.AvgKmPerL = res.AvgKmPerL
		s.SampleCount = res.SampleCount

		// Fuel level changed; the old alert no longer applies.
		s.ClearLowRangeAlert()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fill, nil
}

// DeleteFillUp removes a fill-up from the history and re-derives every
// estimate from what remains.
func (e *Engine) DeleteFillUp(id uuid.UUID) error {
	e.mu.Lock()
	idx := -1
	for i := range e.state.FillUps {
		if e.state.FillUps[i].ID == id {
			idx = i
			break
		}
	}
	e.mu.Unlock()
	if idx == -1 {
		return ErrFillUpNotFound
	}

	return e.mutate(func(s *models.VehicleState) []Event {
		for i := range s.FillUps {
			if s.FillUps[i].ID == id {
				s.FillUps = append(s.FillUps[:i], s.FillUps[i+1:]...)
				break
			}
		}

		res := Recompute(s.FillUps, s.OdometerKm, s.TankCapacityL, s.AvgKmPerL, s.FuelLeftL)
		s.AvgKmPerL = res.AvgKmPerL
		s.SampleCount = res.SampleCount
		s.FuelLeftL = res.FuelLeftL
		return nil
	})
}

// ReplaceFillUps swaps in a new history wholesale (the pull half of remote
// reconciliation) and re-derives every estimate from it.
func (e *Engine) ReplaceFillUps(fillups []models.FillUp) error {
	return e.mutate(func(s *models.VehicleState) []Event {
		s.FillUps = append([]models.FillUp(nil), fillups...)

		res := Recompute(s.FillUps, s.OdometerKm, s.TankCapacityL, s.AvgKmPerL, s.FuelLeftL)
		s.AvgKmPerL = res.AvgKmPerL
		s.SampleCount = res.SampleCount
		s.FuelLeftL = res.FuelLeftL
		return nil
	})
}

// ResetAll returns the state to factory defaults. Used on sign-out or account
// switch; never partial.
func (e *Engine) ResetAll() error {
	return e.mutate(func(s *models.VehicleState) []Event {
		s.Reset()
		return nil
	})
}
