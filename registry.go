package hsm

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/hsm/pkg/domain"
)

// Factory builds a fresh state instance. It is called once per push.
type Factory[O any] func() State[O]

// Registry maps state identifiers to the factories that build them.
// A Registry may be shared by several machines.
type Registry[O any] struct {
	mu           sync.RWMutex
	factories    map[domain.StateID]Factory[O]
	descriptions map[domain.StateID]string
}

// NewRegistry creates a new empty registry.
func NewRegistry[O any]() *Registry[O] {
	return &Registry[O]{
		factories:    make(map[domain.StateID]Factory[O]),
		descriptions: make(map[domain.StateID]string),
	}
}

// Register adds a factory under id.
// Registering the same id twice returns domain.ErrDuplicateState.
func (r *Registry[O]) Register(id domain.StateID, f Factory[O]) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", domain.ErrUnknownState)
	}
	if f == nil {
		return fmt.Errorf("nil factory for state %s", id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[id]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateState, id)
	}
	r.factories[id] = f
	return nil
}

// MustRegister is Register for static setup code; it panics on error.
func (r *Registry[O]) MustRegister(id domain.StateID, f Factory[O]) {
	if err := r.Register(id, f); err != nil {
		panic(err)
	}
}

// Describe attaches a human-readable description to id.
func (r *Registry[O]) Describe(id domain.StateID, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.descriptions[id] = text
}

// Description returns the text attached with Describe.
func (r *Registry[O]) Description(id domain.StateID) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.descriptions[id]
}

// Has reports whether id is registered.
func (r *Registry[O]) Has(id domain.StateID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[id]
	return ok
}

// IDs returns every registered identifier in lexical order.
func (r *Registry[O]) IDs() []domain.StateID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]domain.StateID, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// New builds a fresh instance of id.
func (r *Registry[O]) New(id domain.StateID) (State[O], error) {
	r.mu.RLock()
	f, ok := r.factories[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownState, id)
	}
	s := f()
	if s == nil {
		return nil, fmt.Errorf("factory for state %s returned nil", id)
	}
	return s, nil
}
