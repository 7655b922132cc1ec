package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/serabi/organized-glitter-sub007/internal/filters"
)

func TestStoreDispatchNotifiesSubscribers(t *testing.T) {
	store := NewStore(filters.DeviceDesktop)
	var mu sync.Mutex
	var commits []Commit
	store.Subscribe(func(c Commit) {
		mu.Lock()
		commits = append(commits, c)
		mu.Unlock()
	})

	store.Dispatch(filters.SetStatus{Status: filters.StatusCompleted}, SourceUser)
	store.Dispatch(filters.SetPage{Page: 2}, SourceSystem)

	mu.Lock()
	defer mu.Unlock()
	if len(commits) != 2 {
		t.Fatalf("commits = %d, want 2", len(commits))
	}
	if commits[0].Source != SourceUser || commits[0].State.ActiveStatus != filters.StatusCompleted {
		t.Fatalf("first commit = %+v", commits[0])
	}
	if commits[1].Source != SourceSystem || commits[1].State.CurrentPage != 2 {
		t.Fatalf("second commit = %+v", commits[1])
	}
}

func TestSubscriberCanReadStateWithoutDeadlock(t *testing.T) {
	store := NewStore(filters.DeviceDesktop)
	var seen filters.Status
	store.Subscribe(func(c Commit) {
		seen = store.State().ActiveStatus
	})
	store.Dispatch(filters.SetStatus{Status: filters.StatusStash}, SourceUser)
	if seen != filters.StatusStash {
		t.Fatalf("subscriber saw %q, want stash", seen)
	}
}

func TestActionsDefaultSources(t *testing.T) {
	store := NewStore(filters.DeviceDesktop)
	actions := NewActions(store)
	var sources []Source
	store.Subscribe(func(c Commit) { sources = append(sources, c.Source) })

	actions.UpdateStatus(filters.StatusProgress)        // defaults to user
	actions.UpdatePage(3)                               // defaults to system
	actions.UpdateViewType(filters.ViewList)            // defaults to system
	actions.BatchUpdateFilters(filters.Patch{})         // defaults to batch
	actions.UpdateSearchTerm("x", SourceInitialization) // explicit override

	want := []Source{SourceUser, SourceSystem, SourceSystem, SourceBatch, SourceInitialization}
	if len(sources) != len(want) {
		t.Fatalf("sources = %v, want %v", sources, want)
	}
	for i := range want {
		if sources[i] != want[i] {
			t.Errorf("source[%d] = %q, want %q", i, sources[i], want[i])
		}
	}
}

// fakeBreakdown backs the stats projector tests.
type fakeBreakdown struct {
	counts map[string]int
	err    error
	calls  int
}

func (f *fakeBreakdown) StatusBreakdown(ctx context.Context, userID string) (map[string]int, error) {
	f.calls++
	return f.counts, f.err
}

func TestStatsProjectorAllCountAggregation(t *testing.T) {
	src := &fakeBreakdown{counts: map[string]int{
		"purchased": 3, "stash": 2, "progress": 1, "onhold": 1,
		"wishlist": 5, "completed": 2,
	}}
	p := NewStatsProjector(src, zap.NewNop(), "u1")
	p.Refresh(context.Background())

	counts, state := p.CountsForTabs()
	if state != StatsReady {
		t.Fatalf("state = %d, want ready", state)
	}
	if counts.All != 7 {
		t.Fatalf("All = %d, want purchased+stash+progress+onhold = 7", counts.All)
	}
	if counts.Wishlist != 5 || counts.Completed != 2 {
		t.Fatalf("counts = %+v", counts)
	}
}

func TestStatsProjectorSentinels(t *testing.T) {
	src := &fakeBreakdown{err: errors.New("summary fetch failed")}
	p := NewStatsProjector(src, zap.NewNop(), "u1")

	if _, state := p.CountsForTabs(); state != StatsLoading {
		t.Fatalf("initial state = %d, want loading", state)
	}

	p.Refresh(context.Background())
	if _, state := p.CountsForTabs(); state != StatsError {
		t.Fatalf("state after failure = %d, want error", state)
	}

	src.err = nil
	src.counts = map[string]int{"stash": 4}
	p.Retry(context.Background())
	counts, state := p.CountsForTabs()
	if state != StatsReady || counts.Stash != 4 || counts.All != 4 {
		t.Fatalf("after retry: state=%d counts=%+v", state, counts)
	}
	if src.calls != 2 {
		t.Fatalf("fetch calls = %d, want 2", src.calls)
	}
}
