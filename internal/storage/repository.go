// ABOUTME: Repository interface for durable vehicle state storage
// ABOUTME: Enables testability and storage backend swapping

package storage

import "github.com/harper/fueltrack/internal/models"

// StateRepository persists the complete vehicle fuel state, fill-up history
// included. Save must be a full durable snapshot: when it returns, the most
// recent mutation survives an immediate process kill.
type StateRepository interface {
	// Load returns the persisted state, or ErrNotFound on first run.
	Load() (*models.VehicleState, error)

	// Save durably writes the entire state.
	Save(state *models.VehicleState) error

	Close() error
}
