package session

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/serabi/organized-glitter-sub007/internal/database/repository"
	"github.com/serabi/organized-glitter-sub007/internal/filters"
)

// DefaultSnapshotMaxAge is how old a saved snapshot may be before the
// reconciler ignores it.
const DefaultSnapshotMaxAge = 24 * time.Hour

// SnapshotReader is the slice of the settings repository the
// reconciler needs.
type SnapshotReader interface {
	ForUser(ctx context.Context, userID string) (*repository.UserSettings, error)
}

// Reconciler produces the session's initial filter state from three
// candidate sources: deep-link query parameters, the remote snapshot,
// and device-aware defaults. Query parameters win outright and
// suppress the snapshot fetch entirely; otherwise the defaults are
// dispatched synchronously and the snapshot, if fresh, lands as a
// second dispatch once its fetch completes.
type Reconciler struct {
	store     *Store
	snapshots SnapshotReader
	log       *zap.Logger
	maxAge    time.Duration

	started atomic.Bool
	done    chan struct{}
}

func NewReconciler(store *Store, snapshots SnapshotReader, log *zap.Logger, maxAge time.Duration) *Reconciler {
	if maxAge <= 0 {
		maxAge = DefaultSnapshotMaxAge
	}
	return &Reconciler{
		store:     store,
		snapshots: snapshots,
		log:       log,
		maxAge:    maxAge,
		done:      make(chan struct{}),
	}
}

// ReconcileInput bundles everything reconciliation depends on, so the
// whole computation is a function of (query, snapshot, device, now)
// rather than ambient globals. Tags must already be loaded: resolving
// a tag name from the query requires them, which is why the caller
// gates reconciliation on metadata load.
type ReconcileInput struct {
	UserID string
	Query  url.Values
	Device filters.DeviceClass
	Now    time.Time
	Tags   []repository.Tag
	// PageSize overrides the device default page size when positive,
	// carrying the configured ui.page_size_* value.
	PageSize int
}

// ReconcileResult reports what the synchronous pass decided.
type ReconcileResult struct {
	// Initial is the state dispatched synchronously.
	Initial filters.State
	// StripQuery tells the caller to rewrite its location without the
	// consumed query parameters (replace, not push).
	StripQuery bool
	// DroppedParams lists query parameters that were present but
	// unusable (unknown tag name, bad status). They are dropped
	// silently; this list exists so a caller could surface a notice.
	DroppedParams []string
	// RestorePending is true when a background snapshot fetch was
	// started.
	RestorePending bool
}

// Done is closed once the background snapshot fetch (if any) has
// finished. Reconcile with query parameters closes it immediately.
func (r *Reconciler) Done() <-chan struct{} { return r.done }

// Reconcile runs at most once per session. The synchronous dispatch
// always happens before the restored snapshot can land; the UI may
// visibly jump once if the snapshot differs, which is accepted.
// Reconcile never returns an error: snapshot fetch failures are logged
// and swallowed, and a missing snapshot is the normal first-run case.
func (r *Reconciler) Reconcile(ctx context.Context, in ReconcileInput) ReconcileResult {
	if !r.started.CompareAndSwap(false, true) {
		return ReconcileResult{Initial: r.store.State()}
	}

	defaults := filters.Defaults(in.Device)
	if in.PageSize > 0 {
		defaults.PageSize = in.PageSize
	}
	res := ReconcileResult{Initial: defaults}

	if len(in.Query) > 0 {
		state, dropped := overlayQuery(defaults, in.Query, in.Tags)
		res.Initial = state
		res.StripQuery = true
		res.DroppedParams = dropped
	}

	r.store.Dispatch(filters.SetInitialState{State: res.Initial}, SourceInitialization)

	if res.StripQuery {
		// Query parameters take absolute precedence: the snapshot is
		// not even fetched.
		close(r.done)
		return res
	}

	res.RestorePending = true
	go func() {
		defer close(r.done)
		r.restore(ctx, in.UserID, in.Now)
	}()
	return res
}

func (r *Reconciler) restore(ctx context.Context, userID string, now time.Time) {
	rec, err := r.snapshots.ForUser(ctx, userID)
	if err != nil {
		r.log.Warn("snapshot fetch failed, keeping defaults",
			zap.String("user_id", userID), zap.Error(err))
		return
	}
	if rec == nil {
		return // first session, nothing saved yet
	}
	snap, err := DecodeSnapshot(rec.NavigationContext)
	if err != nil {
		r.log.Warn("snapshot payload unreadable, keeping defaults",
			zap.String("user_id", userID), zap.Error(err))
		return
	}
	if now.Sub(snap.Timestamp) > r.maxAge {
		r.log.Debug("snapshot stale, keeping defaults",
			zap.String("user_id", userID),
			zap.Time("saved_at", snap.Timestamp))
		return
	}
	if snap.State.Equal(r.store.State()) {
		return
	}
	r.store.Dispatch(filters.SetInitialState{State: snap.State}, SourceInitialization)
}

// Query parameter names consumed on dashboard load.
const (
	paramStatus     = "status"
	paramCompany    = "company"
	paramArtist     = "artist"
	paramTag        = "tag"
	paramYear       = "year"
	paramDrillShape = "drillShape"
)

// overlayQuery applies recognized query parameters on top of base.
// The tag parameter carries a tag NAME and is resolved against the
// loaded tag list; an unmatched name is dropped. Unrecognized
// parameter names are ignored entirely.
func overlayQuery(base filters.State, q url.Values, tags []repository.Tag) (filters.State, []string) {
	s := base
	var dropped []string

	if v := q.Get(paramStatus); v != "" {
		st := filters.Status(strings.ToLower(v))
		if filters.ValidStatus(st) {
			s.ActiveStatus = st
		} else {
			dropped = append(dropped, paramStatus)
		}
	}
	if v := q.Get(paramCompany); v != "" {
		s.SelectedCompany = v
	}
	if v := q.Get(paramArtist); v != "" {
		s.SelectedArtist = v
	}
	if v := q.Get(paramDrillShape); v != "" {
		s.SelectedDrillShape = strings.ToLower(v)
	}
	if v := q.Get(paramYear); v != "" {
		if _, err := strconv.Atoi(v); err == nil && len(v) == 4 {
			s.SelectedYearFinished = v
		} else {
			dropped = append(dropped, paramYear)
		}
	}
	if v := q.Get(paramTag); v != "" {
		if id, ok := resolveTagName(tags, v); ok {
			s.SelectedTags = []string{id}
		} else {
			dropped = append(dropped, paramTag)
		}
	}

	s.CurrentPage = 1
	return s, dropped
}

func resolveTagName(tags []repository.Tag, name string) (string, bool) {
	for _, t := range tags {
		if strings.EqualFold(strings.TrimSpace(t.Name), strings.TrimSpace(name)) {
			return t.ID, true
		}
	}
	return "", false
}
