package controllers

import "sync"

// Sequencer hands out increasing generation numbers per scope so a handler
// can tell whether a newer request of the same kind started while it was
// waiting for its response.
type Sequencer struct {
	mu   sync.Mutex
	gens map[string]uint64
}

func NewSequencer() *Sequencer {
	return &Sequencer{gens: make(map[string]uint64)}
}

// Begin starts a request in scope and returns its generation
func (s *Sequencer) Begin(scope string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gens[scope]++
	return s.gens[scope]
}

// Current reports whether gen is still the latest request in scope
func (s *Sequencer) Current(scope string, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gens[scope] == gen
}
