package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/serabi/organized-glitter-sub007/internal/filters"
)

// BreakdownSource provides the unfiltered per-status project counts.
type BreakdownSource interface {
	StatusBreakdown(ctx context.Context, userID string) (map[string]int, error)
}

// StatsState is the projector's sentinel: tab badges render a spinner
// for StatsLoading and a retry affordance for StatsError. Counts are
// only meaningful in StatsReady — the map is never partially filled.
type StatsState int

const (
	StatsLoading StatsState = iota
	StatsError
	StatsReady
)

// TabCounts carries one badge count per status tab. All is derived:
// purchased + stash + progress + on-hold — the statuses that make a
// project "active". This aggregation rule is what the All tab means to
// users and must not drift.
type TabCounts struct {
	All       int
	Wishlist  int
	Purchased int
	Stash     int
	Progress  int
	OnHold    int
	Completed int
	Destashed int
	Archived  int
}

// StatsProjector fetches the unfiltered status breakdown and projects
// it into tab badge counts. It is deliberately independent of the
// filter store: badges show true totals even while a filter narrows
// the visible list.
type StatsProjector struct {
	source BreakdownSource
	log    *zap.Logger
	userID string

	mu     sync.Mutex
	state  StatsState
	counts TabCounts
}

func NewStatsProjector(source BreakdownSource, log *zap.Logger, userID string) *StatsProjector {
	return &StatsProjector{source: source, log: log, userID: userID, state: StatsLoading}
}

// CountsForTabs returns the current counts and the sentinel state.
// Counts are zero-valued unless the state is StatsReady.
func (p *StatsProjector) CountsForTabs() (TabCounts, StatsState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StatsReady {
		return TabCounts{}, p.state
	}
	return p.counts, StatsReady
}

// Refresh fetches the breakdown and moves the projector to ready or
// error. It blocks; run it from a goroutine (or a tea.Cmd) so the UI
// renders the loading sentinel meanwhile.
func (p *StatsProjector) Refresh(ctx context.Context) {
	p.mu.Lock()
	p.state = StatsLoading
	p.mu.Unlock()

	breakdown, err := p.source.StatusBreakdown(ctx, p.userID)
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.log.Warn("status breakdown fetch failed",
			zap.String("user_id", p.userID), zap.Error(err))
		p.state = StatsError
		p.counts = TabCounts{}
		return
	}
	p.counts = projectCounts(breakdown)
	p.state = StatsReady
}

// Retry is the user-triggered refetch after an error. It only touches
// the projector; filter state is never involved.
func (p *StatsProjector) Retry(ctx context.Context) {
	p.Refresh(ctx)
}

func projectCounts(breakdown map[string]int) TabCounts {
	c := TabCounts{
		Wishlist:  breakdown[string(filters.StatusWishlist)],
		Purchased: breakdown[string(filters.StatusPurchased)],
		Stash:     breakdown[string(filters.StatusStash)],
		Progress:  breakdown[string(filters.StatusProgress)],
		OnHold:    breakdown[string(filters.StatusOnHold)],
		Completed: breakdown[string(filters.StatusCompleted)],
		Destashed: breakdown[string(filters.StatusDestashed)],
		Archived:  breakdown[string(filters.StatusArchived)],
	}
	c.All = c.Purchased + c.Stash + c.Progress + c.OnHold
	return c
}
