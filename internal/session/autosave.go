package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/serabi/organized-glitter-sub007/internal/filters"
)

// Default auto-save tuning. Both are product decisions rather than
// derived invariants, so config can override them.
const (
	DefaultEnableDelay = 1500 * time.Millisecond
	DefaultMinInterval = 1 * time.Second
)

// SnapshotWriter is the slice of the settings repository the
// auto-saver needs.
type SnapshotWriter interface {
	Upsert(ctx context.Context, userID string, navigationContext []byte, now time.Time) error
}

// AutoSaveConfig tunes the save coordinator.
type AutoSaveConfig struct {
	// EnableDelay is how long after initialization saves stay
	// disabled, so the reconciler's own dispatches are never written
	// back as if the user had made them.
	EnableDelay time.Duration
	// MinInterval is both the debounce window and the minimum spacing
	// between successful writes.
	MinInterval time.Duration
}

func (c AutoSaveConfig) withDefaults() AutoSaveConfig {
	if c.EnableDelay <= 0 {
		c.EnableDelay = DefaultEnableDelay
	}
	if c.MinInterval <= 0 {
		c.MinInterval = DefaultMinInterval
	}
	return c
}

// AutoSaver subscribes to store commits and writes the snapshot back
// to the settings record, debounced. Rapid commits coalesce: the write
// reads the latest store state when the timer fires, never the state
// captured at commit time, so a burst of changes produces one write
// containing the final state.
//
// Write failures are logged and dropped; the next user commit retries
// naturally. There is no cancellation of an in-flight write — a newer
// state simply triggers its own later save.
type AutoSaver struct {
	store     *Store
	snapshots SnapshotWriter
	log       *zap.Logger
	cfg       AutoSaveConfig
	scrollPos func() int
	now       func() time.Time

	mu          sync.Mutex
	userID      string
	initialized bool
	enabledAt   time.Time
	hasSaved    bool
	lastSaved   filters.State
	lastSavedAt time.Time
	timer       *time.Timer
	closed      bool

	// saved receives one value per completed write attempt (true on
	// success). Buffered; used by Flush and tests.
	saved chan bool
}

// NewAutoSaver wires the saver to the store. scrollPos supplies the
// current scroll offset for the preservation context; pass a func
// returning 0 when the caller has no scroll concept.
func NewAutoSaver(store *Store, snapshots SnapshotWriter, log *zap.Logger, cfg AutoSaveConfig, scrollPos func() int) *AutoSaver {
	if scrollPos == nil {
		scrollPos = func() int { return 0 }
	}
	s := &AutoSaver{
		store:     store,
		snapshots: snapshots,
		log:       log,
		cfg:       cfg.withDefaults(),
		scrollPos: scrollPos,
		now:       time.Now,
		saved:     make(chan bool, 16),
	}
	store.Subscribe(s.onCommit)
	return s
}

// MarkInitialized records that reconciliation has produced the initial
// state for userID. Saving becomes possible EnableDelay later.
func (s *AutoSaver) MarkInitialized(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.initialized = true
	s.enabledAt = s.now().Add(s.cfg.EnableDelay)
	// The reconciler's state is the baseline; saving it back verbatim
	// would be a pointless write.
	s.lastSaved = s.store.State()
	s.hasSaved = false
}

// Close stops any pending timer. No further saves run after Close.
func (s *AutoSaver) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// skipReason enumerates why a commit does not lead to a save. The
// decision is pure so the gating rules are testable without timers.
type skipReason int

const (
	saveEligible skipReason = iota
	skipNotInitialized
	skipNoUser
	skipNotEnabled
	skipSource
	skipRateLimited
	skipUnchanged
)

type saveCheck struct {
	Initialized bool
	UserID      string
	Source      Source
	Now         time.Time
	EnabledAt   time.Time
	HasSaved    bool
	LastSavedAt time.Time
	MinInterval time.Duration
	Unchanged   bool
}

// evaluateSave applies the skip rules in order. The first failing rule
// wins; rate limiting and content equality are only meaningful once
// the cheaper gates pass.
func evaluateSave(c saveCheck) skipReason {
	if !c.Initialized {
		return skipNotInitialized
	}
	if c.UserID == "" {
		return skipNoUser
	}
	if c.Source != SourceUser && c.Source != SourceBatch {
		return skipSource
	}
	if c.Now.Before(c.EnabledAt) {
		return skipNotEnabled
	}
	if c.HasSaved && c.Now.Sub(c.LastSavedAt) < c.MinInterval {
		return skipRateLimited
	}
	if c.Unchanged {
		return skipUnchanged
	}
	return saveEligible
}

func (s *AutoSaver) onCommit(c Commit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	now := s.now()
	reason := evaluateSave(saveCheck{
		Initialized: s.initialized,
		UserID:      s.userID,
		Source:      c.Source,
		Now:         now,
		EnabledAt:   s.enabledAt,
		HasSaved:    s.hasSaved,
		LastSavedAt: s.lastSavedAt,
		MinInterval: s.cfg.MinInterval,
		Unchanged:   c.State.Equal(s.lastSaved),
	})
	switch reason {
	case skipNotInitialized, skipNoUser, skipSource, skipUnchanged:
		return
	}

	// Eligible (or merely not-yet-enabled / rate-limited): debounce.
	// Each new commit pushes the timer back, so a burst collapses into
	// one write of whatever the state is when the timer fires.
	delay := s.cfg.MinInterval
	if until := s.enabledAt.Sub(now); until > delay {
		delay = until
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(delay, s.fire)
}

func (s *AutoSaver) fire() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	now := s.now()
	state := s.store.State() // latest state, not the commit that armed the timer
	if now.Before(s.enabledAt) {
		s.timer = time.AfterFunc(s.enabledAt.Sub(now), s.fire)
		s.mu.Unlock()
		return
	}
	if s.hasSaved && now.Sub(s.lastSavedAt) < s.cfg.MinInterval {
		s.timer = time.AfterFunc(s.cfg.MinInterval-now.Sub(s.lastSavedAt), s.fire)
		s.mu.Unlock()
		return
	}
	if state.Equal(s.lastSaved) {
		s.mu.Unlock()
		return
	}
	userID := s.userID
	s.mu.Unlock()

	payload, err := EncodeSnapshot(state, s.scrollPos(), now)
	if err == nil {
		err = s.snapshots.Upsert(context.Background(), userID, payload, now)
	}

	s.mu.Lock()
	if err != nil {
		s.log.Warn("auto-save failed, will retry on next change",
			zap.String("user_id", userID), zap.Error(err))
	} else {
		s.hasSaved = true
		s.lastSaved = state
		s.lastSavedAt = now
	}
	s.mu.Unlock()

	select {
	case s.saved <- err == nil:
	default:
	}
}

// Saves exposes completed write attempts (true on success). Intended
// for teardown hooks and tests that need to observe save timing.
func (s *AutoSaver) Saves() <-chan bool { return s.saved }

// Flush forces a pending debounced save to run now, if one is armed.
// Used on logout so the last state is not lost to the debounce window.
func (s *AutoSaver) Flush() {
	s.mu.Lock()
	pending := s.timer != nil
	if pending {
		s.timer.Stop()
		s.timer = nil
		// Skip the waits: a flush writes immediately regardless of the
		// enable delay or rate limit.
		s.enabledAt = s.now()
		s.lastSavedAt = s.now().Add(-s.cfg.MinInterval)
	}
	s.mu.Unlock()
	if pending {
		s.fire()
	}
}
