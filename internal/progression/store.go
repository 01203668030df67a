package progression

import "sync"

// Store holds one learner's progression for the lifetime of the process.
//
// Level is only ever recomputed from points and only replaced when the
// recomputed value is greater than the stored one.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners []func(Change)
}

// New creates a Store starting at initial.
func New(initial State) *Store {
	return &Store{state: initial}
}

// NewDefault creates a Store starting at DefaultState.
func NewDefault() *Store {
	return New(DefaultState)
}

// AddPoints adds amount to the point total and raises the level if the
// recomputed level is higher. amount is not validated.
func (s *Store) AddPoints(amount int) Change {
	s.mu.Lock()
	before := s.state
	s.state.Points += amount
	if next := LevelFor(s.state.Points); next > s.state.Level {
		s.state.Level = next
	}
	c := Change{Amount: amount, Before: before, After: s.state}
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Restore replaces the state with a persisted one. The level is raised to
// LevelFor(st.Points) when the persisted level is behind.
func (s *Store) Restore(st State) {
	if next := LevelFor(st.Points); next > st.Level {
		st.Level = next
	}
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// OnChange registers fn to be called after every AddPoints, in
// registration order and outside the store lock.
func (s *Store) OnChange(fn func(Change)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners[:len(s.listeners):len(s.listeners)], fn)
}
