// ABOUTME: Shared test helpers for sync package tests
// ABOUTME: Provides fake remote store, fake auth, and engine setup

package sync

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/harper/fueltrack/internal/fuel"
	"github.com/harper/fueltrack/internal/models"
	"github.com/harper/fueltrack/internal/storage"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory StateRepository for tests.
type memRepo struct {
	state *models.VehicleState
}

func (m *memRepo) Load() (*models.VehicleState, error) {
	if m.state == nil {
		return nil, storage.ErrNotFound
	}
	return m.state.Clone(), nil
}

func (m *memRepo) Save(state *models.VehicleState) error {
	m.state = state.Clone()
	return nil
}

func (m *memRepo) Close() error { return nil }

// fakeRemote is an in-memory RemoteStore keyed by app_id.
type fakeRemote struct {
	mu   sync.Mutex
	rows map[string]Row

	pullErr   error
	upsertErr error
	deleteErr error

	// pullGate, when set, is called at the start of PullAll; tests use it to
	// hold a pull open.
	pullGate func()

	pulls   int
	upserts int
	deletes int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{rows: make(map[string]Row)}
}

func (f *fakeRemote) PullAll(_ context.Context, userID string) ([]Row, error) {
	if f.pullGate != nil {
		f.pullGate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pulls++
	if f.pullErr != nil {
		return nil, f.pullErr
	}
	var rows []Row
	for _, r := range f.rows {
		if r.UserID == userID {
			rows = append(rows, r)
		}
	}
	// Date-ascending, the order the real store returns.
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			if rows[j].Date.Before(rows[i].Date) {
				rows[i], rows[j] = rows[j], rows[i]
			}
		}
	}
	return rows, nil
}

func (f *fakeRemote) Upsert(_ context.Context, row Row) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.rows[row.AppID] = row
	return nil
}

func (f *fakeRemote) DeleteByKey(_ context.Context, appID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.rows, appID) // absent key is fine: idempotent
	return nil
}

func (f *fakeRemote) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// fakeAuth returns a fixed user, or none when id is empty.
type fakeAuth struct {
	id string
}

func (a *fakeAuth) CurrentUserID() (string, bool) {
	return a.id, a.id != ""
}

var errNetwork = errors.New("connection reset")

// setupReconciler builds an engine over in-memory storage plus a reconciler
// against the fake remote, signed in as "user-1".
func setupReconciler(t *testing.T) (*Reconciler, *fuel.Engine, *fakeRemote) {
	t.Helper()

	engine, err := fuel.NewEngine(&memRepo{})
	require.NoError(t, err)

	remote := newFakeRemote()
	rec := NewReconciler(engine, remote, &fakeAuth{id: "user-1"}, nil)
	return rec, engine, remote
}
