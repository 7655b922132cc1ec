package session

import (
	"context"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/serabi/organized-glitter-sub007/internal/database/repository"
	"github.com/serabi/organized-glitter-sub007/internal/filters"
)

// fakeSnapshots serves a canned settings record and counts fetches.
type fakeSnapshots struct {
	rec     *repository.UserSettings
	err     error
	fetches atomic.Int32
}

func (f *fakeSnapshots) ForUser(ctx context.Context, userID string) (*repository.UserSettings, error) {
	f.fetches.Add(1)
	return f.rec, f.err
}

func snapshotRecord(t *testing.T, s filters.State, savedAt time.Time) *repository.UserSettings {
	t.Helper()
	data, err := EncodeSnapshot(s, 0, savedAt)
	if err != nil {
		t.Fatalf("encode snapshot: %v", err)
	}
	return &repository.UserSettings{ID: "rec1", UserID: "u1", NavigationContext: data, UpdatedAt: savedAt}
}

func testTags() []repository.Tag {
	return []repository.Tag{
		{ID: "tag-animals", UserID: "u1", Name: "Animals"},
		{ID: "tag-fantasy", UserID: "u1", Name: "Fantasy"},
	}
}

func reconcileInput(query string) ReconcileInput {
	q, _ := url.ParseQuery(query)
	return ReconcileInput{
		UserID: "u1",
		Query:  q,
		Device: filters.DeviceDesktop,
		Now:    time.Now(),
		Tags:   testTags(),
	}
}

func TestQueryParamsWinAndSuppressSnapshotFetch(t *testing.T) {
	remote := filters.Defaults(filters.DeviceDesktop)
	remote.ActiveStatus = filters.StatusWishlist
	snaps := &fakeSnapshots{rec: snapshotRecord(t, remote, time.Now())}

	store := NewStore(filters.DeviceDesktop)
	r := NewReconciler(store, snaps, zap.NewNop(), 0)
	res := r.Reconcile(context.Background(), reconcileInput("status=completed"))
	<-r.Done()

	if got := store.State().ActiveStatus; got != filters.StatusCompleted {
		t.Fatalf("ActiveStatus = %q, want completed", got)
	}
	if !res.StripQuery {
		t.Fatal("expected StripQuery for consumed parameters")
	}
	if res.RestorePending {
		t.Fatal("restore must not start when the query has parameters")
	}
	if n := snaps.fetches.Load(); n != 0 {
		t.Fatalf("snapshot fetched %d times, want 0", n)
	}
}

func TestFreshSnapshotRestoredInBackground(t *testing.T) {
	remote := filters.Defaults(filters.DeviceDesktop)
	remote.ActiveStatus = filters.StatusStash
	remote.SearchTerm = "owl"
	snaps := &fakeSnapshots{rec: snapshotRecord(t, remote, time.Now().Add(-time.Hour))}

	store := NewStore(filters.DeviceDesktop)
	r := NewReconciler(store, snaps, zap.NewNop(), 0)
	res := r.Reconcile(context.Background(), reconcileInput(""))

	// The synchronous dispatch lands before the restore can.
	if !res.Initial.Equal(filters.Defaults(filters.DeviceDesktop)) {
		t.Fatalf("sync initial = %+v, want defaults", res.Initial)
	}
	if !res.RestorePending {
		t.Fatal("expected a background restore")
	}
	<-r.Done()
	got := store.State()
	if got.ActiveStatus != filters.StatusStash || got.SearchTerm != "owl" {
		t.Fatalf("restored state = %+v, want snapshot values", got)
	}
}

func TestStaleSnapshotIgnored(t *testing.T) {
	remote := filters.Defaults(filters.DeviceDesktop)
	remote.ActiveStatus = filters.StatusCompleted
	snaps := &fakeSnapshots{rec: snapshotRecord(t, remote, time.Now().Add(-25*time.Hour))}

	store := NewStore(filters.DeviceDesktop)
	r := NewReconciler(store, snaps, zap.NewNop(), 0)
	r.Reconcile(context.Background(), reconcileInput(""))
	<-r.Done()

	if got := store.State().ActiveStatus; got != filters.StatusAll {
		t.Fatalf("ActiveStatus = %q, want defaults after stale snapshot", got)
	}
}

func TestMissingSnapshotIsNotAnError(t *testing.T) {
	snaps := &fakeSnapshots{rec: nil}
	store := NewStore(filters.DevicePhone)
	r := NewReconciler(store, snaps, zap.NewNop(), 0)
	r.Reconcile(context.Background(), ReconcileInput{
		UserID: "u1", Device: filters.DevicePhone, Now: time.Now(), Tags: testTags(),
	})
	<-r.Done()

	want := filters.Defaults(filters.DevicePhone)
	if !store.State().Equal(want) {
		t.Fatalf("state = %+v, want phone defaults", store.State())
	}
}

func TestConfiguredPageSizeAppliedToDefaults(t *testing.T) {
	store := NewStore(filters.DeviceDesktop)
	r := NewReconciler(store, &fakeSnapshots{}, zap.NewNop(), 0)
	in := ReconcileInput{
		UserID: "u1", Device: filters.DeviceDesktop, Now: time.Now(),
		Tags: testTags(), PageSize: 50,
	}
	res := r.Reconcile(context.Background(), in)
	<-r.Done()

	if res.Initial.PageSize != 50 {
		t.Fatalf("Initial.PageSize = %d, want configured 50", res.Initial.PageSize)
	}
	if got := store.State().PageSize; got != 50 {
		t.Fatalf("store PageSize = %d, want 50", got)
	}

	// Zero keeps the device default.
	store2 := NewStore(filters.DeviceDesktop)
	r2 := NewReconciler(store2, &fakeSnapshots{}, zap.NewNop(), 0)
	res2 := r2.Reconcile(context.Background(), ReconcileInput{
		UserID: "u1", Device: filters.DeviceDesktop, Now: time.Now(), Tags: testTags(),
	})
	<-r2.Done()
	if want := filters.Defaults(filters.DeviceDesktop).PageSize; res2.Initial.PageSize != want {
		t.Fatalf("Initial.PageSize = %d, want device default %d", res2.Initial.PageSize, want)
	}
}

func TestTagNameResolvedToID(t *testing.T) {
	store := NewStore(filters.DeviceDesktop)
	r := NewReconciler(store, &fakeSnapshots{}, zap.NewNop(), 0)
	res := r.Reconcile(context.Background(), reconcileInput("tag=animals"))
	<-r.Done()

	if !store.State().HasTag("tag-animals") {
		t.Fatalf("SelectedTags = %v, want resolved tag id", store.State().SelectedTags)
	}
	if len(res.DroppedParams) != 0 {
		t.Fatalf("DroppedParams = %v, want none", res.DroppedParams)
	}
}

func TestUnknownTagNameDroppedSilently(t *testing.T) {
	store := NewStore(filters.DeviceDesktop)
	r := NewReconciler(store, &fakeSnapshots{}, zap.NewNop(), 0)
	res := r.Reconcile(context.Background(), reconcileInput("tag=nope&status=completed"))
	<-r.Done()

	if len(store.State().SelectedTags) != 0 {
		t.Fatalf("SelectedTags = %v, want empty", store.State().SelectedTags)
	}
	if store.State().ActiveStatus != filters.StatusCompleted {
		t.Fatal("valid params must still apply when another is dropped")
	}
	if len(res.DroppedParams) != 1 || res.DroppedParams[0] != "tag" {
		t.Fatalf("DroppedParams = %v, want [tag]", res.DroppedParams)
	}
}

func TestInvalidStatusAndYearDropped(t *testing.T) {
	store := NewStore(filters.DeviceDesktop)
	r := NewReconciler(store, &fakeSnapshots{}, zap.NewNop(), 0)
	r.Reconcile(context.Background(), reconcileInput("status=bogus&year=twenty"))
	<-r.Done()

	got := store.State()
	if got.ActiveStatus != filters.StatusAll {
		t.Fatalf("ActiveStatus = %q, want all", got.ActiveStatus)
	}
	if got.SelectedYearFinished != filters.SelectAll {
		t.Fatalf("SelectedYearFinished = %q, want all", got.SelectedYearFinished)
	}
}

func TestReconcileRunsOnce(t *testing.T) {
	snaps := &fakeSnapshots{}
	store := NewStore(filters.DeviceDesktop)
	r := NewReconciler(store, snaps, zap.NewNop(), 0)
	r.Reconcile(context.Background(), reconcileInput("status=completed"))
	<-r.Done()

	// A second call is a no-op: state stays as-is, nothing refetched.
	res := r.Reconcile(context.Background(), reconcileInput("status=wishlist"))
	if store.State().ActiveStatus != filters.StatusCompleted {
		t.Fatalf("second reconcile changed state to %q", store.State().ActiveStatus)
	}
	if res.StripQuery || res.RestorePending {
		t.Fatalf("second reconcile reported work: %+v", res)
	}
}

func TestSnapshotFetchErrorSwallowed(t *testing.T) {
	snaps := &fakeSnapshots{err: context.DeadlineExceeded}
	store := NewStore(filters.DeviceDesktop)
	r := NewReconciler(store, snaps, zap.NewNop(), 0)
	r.Reconcile(context.Background(), reconcileInput(""))
	<-r.Done()

	if !store.State().Equal(filters.Defaults(filters.DeviceDesktop)) {
		t.Fatal("fetch error must leave defaults in place")
	}
}
