package drawing

import "sync"

// Store keeps one drawing State per session key. The store lock covers the
// map; each State synchronizes its own mutation, since requests for one
// user can overlap.
type Store struct {
	mu     sync.Mutex
	states map[string]*State
}

func NewStore() *Store {
	return &Store{states: make(map[string]*State)}
}

// Get returns the session's drawing, creating an empty one on first use.
func (s *Store) Get(key string) *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[key]
	if !ok {
		st = NewState()
		s.states[key] = st
	}
	return st
}

// Drop forgets the session's drawing, e.g. on logout.
func (s *Store) Drop(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, key)
}
