package state

import "sync"

// Registry maps session state IDs to their State, creating on first use.
// It is process-local: a restart starts every client with an empty sales log,
// which matches the sales log being deliberately non-persistent.
type Registry struct {
	mu     sync.Mutex
	states map[string]*State
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{states: make(map[string]*State)}
}

// Get returns the State for id, allocating a fresh one on first sight.
func (r *Registry) Get(id string) *State {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.states[id]
	if !ok {
		st = New()
		r.states[id] = st
	}
	return st
}

// Len reports how many client states are live. Used by tests and diagnostics.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}
