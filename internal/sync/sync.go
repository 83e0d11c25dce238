// ABOUTME: Reconciliation between the local fill-up history and the remote store
// ABOUTME: Push and delete are per-entity and retryable; pull is a full overwrite

package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/harper/fueltrack/internal/fuel"
	"github.com/harper/fueltrack/internal/models"
)

// ErrPullInFlight is returned when a pull is requested while another pull is
// still running. Interleaved pulls would partially overwrite each other.
var ErrPullInFlight = errors.New("a pull is already in flight")

// RemoteError wraps a failed remote operation. Remote failures are always
// recoverable: the local state is durable before any remote call is made.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string { return fmt.Sprintf("remote %s: %v", e.Op, e.Err) }
func (e *RemoteError) Unwrap() error { return e.Err }

// Reconciler aligns the local history with the remote store. All operations
// are silent no-ops when nobody is signed in. Fill-ups whose push failed stay
// in a pending set and are retried before any pull, so a pull cannot drop a
// record the remote never received.
type Reconciler struct {
	engine *fuel.Engine
	remote RemoteStore
	auth   Auth
	log    *slog.Logger

	mu      sync.Mutex
	pulling bool
	pending map[uuid.UUID]models.FillUp
}

// NewReconciler creates a reconciler. A nil logger falls back to slog.Default.
func NewReconciler(engine *fuel.Engine, remote RemoteStore, auth Auth, log *slog.Logger) *Reconciler {
	if log == nil {
		log = slog.Default()
	}
	return &Reconciler{
		engine:  engine,
		remote:  remote,
		auth:    auth,
		log:     log,
		pending: make(map[uuid.UUID]models.FillUp),
	}
}

// Push upserts one fill-up's remote row, keyed by the client-generated id so
// retries never create duplicates. On failure the fill-up is queued for a
// later Flush and a RemoteError is returned; the local record is already
// durable either way.
func (r *Reconciler) Push(ctx context.Context, f models.FillUp) error {
	userID, ok := r.auth.CurrentUserID()
	if !ok {
		return nil
	}

	if err := r.remote.Upsert(ctx, ToRow(f, userID)); err != nil {
		r.mu.Lock()
		r.pending[f.ID] = f
		r.mu.Unlock()
		r.log.Warn("push failed, queued for retry", "id", f.ID, "error", err)
		return &RemoteError{Op: "push", Err: err}
	}

	r.mu.Lock()
	delete(r.pending, f.ID)
	r.mu.Unlock()
	r.log.Debug("pushed fill-up", "id", f.ID)
	return nil
}

// Delete removes the remote row for a locally deleted fill-up. Deleting an
// already-absent row is not an error. Any pending push for the same id is
// dropped; it would only resurrect the deleted record.
func (r *Reconciler) Delete(ctx context.Context, id uuid.UUID) error {
	_, ok := r.auth.CurrentUserID()
	if !ok {
		return nil
	}

	r.mu.Lock()
	delete(r.pending, id)
	r.mu.Unlock()

	if err := r.remote.DeleteByKey(ctx, id.String()); err != nil {
		return &RemoteError{Op: "delete", Err: err}
	}
	r.log.Debug("deleted remote fill-up", "id", id)
	return nil
}

// Flush retries every pending push. Entries that succeed leave the pending
// set; the first failure stops the flush and is returned.
func (r *Reconciler) Flush(ctx context.Context) error {
	userID, ok := r.auth.CurrentUserID()
	if !ok {
		return nil
	}

	r.mu.Lock()
	queued := make([]models.FillUp, 0, len(r.pending))
	for _, f := range r.pending {
		queued = append(queued, f)
	}
	r.mu.Unlock()

	for _, f := range queued {
		if err := r.remote.Upsert(ctx, ToRow(f, userID)); err != nil {
			return &RemoteError{Op: "push", Err: err}
		}
		r.mu.Lock()
		delete(r.pending, f.ID)
		r.mu.Unlock()
	}
	return nil
}

// Pull fetches the user's entire remote history and replaces the local one,
// followed by a full recompute. This is a total overwrite, so outstanding
// pushes are flushed first; if the flush fails the pull is aborted rather
// than silently dropping local records the remote never saw. At most one pull
// runs at a time; concurrent requests get ErrPullInFlight.
func (r *Reconciler) Pull(ctx context.Context) error {
	userID, ok := r.auth.CurrentUserID()
	if !ok {
		return nil
	}

	r.mu.Lock()
	if r.pulling {
		r.mu.Unlock()
		return ErrPullInFlight
	}
	r.pulling = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.pulling = false
		r.mu.Unlock()
	}()

	if err := r.Flush(ctx); err != nil {
		return fmt.Errorf("flush before pull: %w", err)
	}

	rows, err := r.remote.PullAll(ctx, userID)
	if err != nil {
		return &RemoteError{Op: "pull", Err: err}
	}

	fillups := make([]models.FillUp, 0, len(rows))
	for _, row := range rows {
		f, err := row.FillUp()
		if err != nil {
			return &RemoteError{Op: "pull", Err: err}
		}
		fillups = append(fillups, f)
	}

	if err := r.engine.ReplaceFillUps(fillups); err != nil {
		return fmt.Errorf("replace local history: %w", err)
	}

	r.log.Info("pull complete", "rows", len(fillups))
	return nil
}

// PendingCount reports how many fill-ups are waiting to be pushed.
func (r *Reconciler) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
