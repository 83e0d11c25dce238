// ABOUTME: Remote fill-up store contract and row mapping
// ABOUTME: Rows are matched by the client-generated app_id, never the row id

package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harper/fueltrack/internal/models"
)

// Row is a fill-up as the remote store represents it. The store keys rows by
// its own id plus user_id; app_id carries the client-generated identifier and
// is the only key reconciliation matches on.
type Row struct {
	AppID      string    `json:"app_id"`
	UserID     string    `json:"user_id"`
	Date       time.Time `json:"date"`
	FuelType   string    `json:"fuel_type"`
	Liters     float64   `json:"liters"`
	PricePerL  float64   `json:"price_per_l"`
	TankFull   bool      `json:"tank_full"`
	OdometerKm float64   `json:"odo_km"`
}

// RemoteStore is the narrow contract the reconciler depends on. Upsert and
// DeleteByKey must be idempotent; PullAll returns rows ordered by date
// ascending.
type RemoteStore interface {
	PullAll(ctx context.Context, userID string) ([]Row, error)
	Upsert(ctx context.Context, row Row) error
	DeleteByKey(ctx context.Context, appID string) error
}

// Auth reports the current user identity, or false when nobody is signed in.
type Auth interface {
	CurrentUserID() (string, bool)
}

// ToRow maps a local fill-up to its remote representation for a user.
func ToRow(f models.FillUp, userID string) Row {
	return Row{
		AppID:      f.ID.String(),
		UserID:     userID,
		Date:       f.Date,
		FuelType:   string(f.FuelType),
		Liters:     f.Liters,
		PricePerL:  f.PricePerL,
		TankFull:   f.TankFull,
		OdometerKm: f.OdometerKm,
	}
}

// FillUp maps a remote row back to a local fill-up.
func (r Row) FillUp() (models.FillUp, error) {
	id, err := uuid.Parse(r.AppID)
	if err != nil {
		return models.FillUp{}, fmt.Errorf("parse app_id %q: %w", r.AppID, err)
	}
	fuelType, err := models.ParseFuelType(r.FuelType)
	if err != nil {
		return models.FillUp{}, fmt.Errorf("row %s: %w", r.AppID, err)
	}
	return models.FillUp{
		ID:         id,
		Date:       r.Date,
		Liters:     r.Liters,
		PricePerL:  r.PricePerL,
		FuelType:   fuelType,
		TankFull:   r.TankFull,
		OdometerKm: r.OdometerKm,
	}, nil
}
