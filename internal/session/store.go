// Package session owns the live dashboard state for one authenticated
// user: the filter store, the startup reconciler that merges deep-link
// parameters with the remote snapshot, the debounced auto-saver, and
// the per-status stats projector. The store is created at login and
// discarded at logout; nothing in here is a package-level singleton.
package session

import (
	"sync"

	"github.com/serabi/organized-glitter-sub007/internal/filters"
)

// Source describes where a dispatch originated. The auto-saver only
// persists user and batch commits; system and initialization commits
// are transient and must not overwrite the user's saved snapshot.
type Source string

const (
	SourceUser           Source = "user"
	SourceSystem         Source = "system"
	SourceBatch          Source = "batch"
	SourceInitialization Source = "initialization"
)

// Commit is one committed state change, delivered to subscribers.
type Commit struct {
	State  filters.State
	Source Source
}

// Store holds the canonical filter state. All mutation goes through
// Dispatch; reads elsewhere are snapshot reads of the last committed
// value.
type Store struct {
	mu    sync.Mutex
	state filters.State
	subs  []func(Commit)
}

// NewStore returns a store seeded with defaults for the device class.
// The reconciler replaces this seed during startup.
func NewStore(device filters.DeviceClass) *Store {
	return &Store{state: filters.Defaults(device)}
}

// State returns the last committed state.
func (s *Store) State() filters.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch runs the action through the reducer, commits the result and
// notifies subscribers. Subscribers run outside the lock so they can
// call State without deadlocking.
func (s *Store) Dispatch(a filters.Action, src Source) filters.State {
	s.mu.Lock()
	s.state = filters.Reduce(s.state, a)
	next := s.state
	subs := make([]func(Commit), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	c := Commit{State: next, Source: src}
	for _, fn := range subs {
		fn(c)
	}
	return next
}

// Subscribe registers fn to run after every commit.
func (s *Store) Subscribe(fn func(Commit)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
