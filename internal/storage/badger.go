// ABOUTME: Badger key-value storage implementation for vehicle fuel state
// ABOUTME: Stores scalar state and per-fillup records under key prefixes

package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/harper/fueltrack/internal/models"
)

// Key layout for the badger backend.
const (
	stateKey     = "state"
	fillUpPrefix = "fillup:"
)

// BadgerStore implements StateRepository on a Badger database. The scalar
// state lives under one key and each fill-up under its own prefixed key, so a
// save only rewrites what changed.
type BadgerStore struct {
	db *badger.DB
}

// Compile-time check that BadgerStore implements StateRepository.
var _ StateRepository = (*BadgerStore)(nil)

// NewBadgerStore opens (creating if needed) a Badger database at the given directory.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Close closes the database.
func (b *BadgerStore) Close() error {
	return b.db.Close()
}

// Load reads the persisted state, or returns ErrNotFound on first run.
func (b *BadgerStore) Load() (*models.VehicleState, error) {
	var state *models.VehicleState

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(stateKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get state: %w", err)
		}

		state = &models.VehicleState{}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, state)
		}); err != nil {
			return fmt.Errorf("unmarshal state: %w", err)
		}

		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(fillUpPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var f models.FillUp
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &f)
			}); err != nil {
				return fmt.Errorf("unmarshal fillup %s: %w", it.Item().Key(), err)
			}
			state.FillUps = append(state.FillUps, f)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Iteration order is key order, not date order; callers sort where it matters.
	return state, nil
}

// Save writes the scalar state and reconciles the fill-up keys: stale entries
// are removed, current ones rewritten, all in one transaction.
func (b *BadgerStore) Save(state *models.VehicleState) error {
	scalar := state.Clone()
	scalar.FillUps = nil
	stateVal, err := json.Marshal(scalar)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	keep := make(map[string][]byte, len(state.FillUps))
	for i := range state.FillUps {
		f := &state.FillUps[i]
		val, err := json.Marshal(f)
		if err != nil {
			return fmt.Errorf("marshal fillup %s: %w", f.ID, err)
		}
		keep[fillUpPrefix+f.ID.String()] = val
	}

	return b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(stateKey), stateVal); err != nil {
			return fmt.Errorf("set state: %w", err)
		}

		// Collect stale fill-up keys first; deleting while iterating is unsafe.
		var stale [][]byte
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		prefix := []byte(fillUpPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			if _, ok := keep[string(key)]; !ok {
				stale = append(stale, key)
			}
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("delete stale fillup %s: %w", key, err)
			}
		}
		for key, val := range keep {
			if err := txn.Set(bytes.Clone([]byte(key)), val); err != nil {
				return fmt.Errorf("set fillup %s: %w", key, err)
			}
		}
		return nil
	})
}
