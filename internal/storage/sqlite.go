// ABOUTME: SQLite storage implementation for vehicle fuel state
// ABOUTME: Provides local persistence using the pure Go SQLite driver

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/harper/fueltrack/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements StateRepository with a local SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Compile-time check that SQLiteStore implements StateRepository.
var _ StateRepository = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if needed) a SQLite database at the given path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // 0750 is appropriate for user data directory
		return nil, fmt.Errorf("create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// migrate creates or updates the database schema.
func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS vehicle_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			tank_capacity_l REAL NOT NULL,
			odometer_km REAL NOT NULL,
			fuel_left_l REAL NOT NULL,
			avg_km_per_l REAL NOT NULL,
			sample_count INTEGER NOT NULL,
			low_range_threshold_km REAL NOT NULL,
			last_low_range_alert_at DATETIME
		);

		CREATE TABLE IF NOT EXISTS fillups (
			id TEXT PRIMARY KEY,
			date DATETIME NOT NULL,
			liters REAL NOT NULL,
			price_per_l REAL NOT NULL,
			fuel_type TEXT NOT NULL,
			tank_full INTEGER NOT NULL,
			odometer_km REAL NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_fillups_date ON fillups(date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the persisted state, or returns ErrNotFound on first run.
func (s *SQLiteStore) Load() (*models.VehicleState, error) {
	row := s.db.QueryRow(`
		SELECT tank_capacity_l, odometer_km, fuel_left_l, avg_km_per_l,
		       sample_count, low_range_threshold_km, last_low_range_alert_at
		FROM vehicle_state WHERE id = 1`)

	state := &models.VehicleState{}
	var alertAt sql.NullTime
	err := row.Scan(
		&state.TankCapacityL, &state.OdometerKm, &state.FuelLeftL,
		&state.AvgKmPerL, &state.SampleCount, &state.LowRangeThresholdKm,
		&alertAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan state: %w", err)
	}
	if alertAt.Valid {
		t := alertAt.Time
		state.LastLowRangeAlertAt = &t
	}

	rows, err := s.db.Query(`
		SELECT id, date, liters, price_per_l, fuel_type, tank_full, odometer_km
		FROM fillups ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("query fillups: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var f models.FillUp
		var id string
		var fuelType string
		if err := rows.Scan(&id, &f.Date, &f.Liters, &f.PricePerL, &fuelType, &f.TankFull, &f.OdometerKm); err != nil {
			return nil, fmt.Errorf("scan fillup: %w", err)
		}
		f.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse fillup id %q: %w", id, err)
		}
		f.FuelType = models.FuelType(fuelType)
		state.FillUps = append(state.FillUps, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fillups: %w", err)
	}

	return state, nil
}

// Save writes the entire state in one transaction. The fill-up table is
// replaced wholesale; the history is small and this keeps deletes and bulk
// replacement from remote sync trivially correct.
func (s *SQLiteStore) Save(state *models.VehicleState) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var alertAt sql.NullTime
	if state.LastLowRangeAlertAt != nil {
		alertAt = sql.NullTime{Time: *state.LastLowRangeAlertAt, Valid: true}
	}

	_, err = tx.Exec(`
		INSERT INTO vehicle_state
			(id, tank_capacity_l, odometer_km, fuel_left_l, avg_km_per_l,
			 sample_count, low_range_threshold_km, last_low_range_alert_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tank_capacity_l = excluded.tank_capacity_l,
			odometer_km = excluded.odometer_km,
			fuel_left_l = excluded.fuel_left_l,
			avg_km_per_l = excluded.avg_km_per_l,
			sample_count = excluded.sample_count,
			low_range_threshold_km = excluded.low_range_threshold_km,
			last_low_range_alert_at = excluded.last_low_range_alert_at`,
		state.TankCapacityL, state.OdometerKm, state.FuelLeftL, state.AvgKmPerL,
		state.SampleCount, state.LowRangeThresholdKm, alertAt,
	)
	if err != nil {
		return fmt.Errorf("upsert state: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM fillups`); err != nil {
		return fmt.Errorf("clear fillups: %w", err)
	}

	for i := range state.FillUps {
		f := &state.FillUps[i]
		_, err := tx.Exec(`
			INSERT INTO fillups (id, date, liters, price_per_l, fuel_type, tank_full, odometer_km)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			f.ID.String(), f.Date, f.Liters, f.PricePerL, string(f.FuelType), f.TankFull, f.OdometerKm,
		)
		if err != nil {
			return fmt.Errorf("insert fillup %s: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
