package http

import (
	"sync"
	"time"

	"github.com/aretw0/hsm/pkg/domain"
)

// StackState is the last published view of a machine.
type StackState struct {
	Machine   string           `json:"machine"`
	Tick      int              `json:"tick"`
	Stack     []domain.StateID `json:"stack"`
	Status    string           `json:"status,omitempty"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Snapshot holds the latest StackState. The frame loop writes it and HTTP handlers
// read it, so access is synchronized.
type Snapshot struct {
	mu    sync.RWMutex
	state StackState
}

// NewSnapshot creates an empty snapshot for machine.
func NewSnapshot(machine string) *Snapshot {
	return &Snapshot{state: StackState{Machine: machine, Stack: []domain.StateID{}}}
}

// Update publishes a new view.
func (s *Snapshot) Update(tick int, stack []domain.StateID, status string) {
	cp := make([]domain.StateID, len(stack))
	copy(cp, stack)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Tick = tick
	s.state.Stack = cp
	s.state.Status = status
	s.state.UpdatedAt = time.Now()
}

// Load returns a copy of the current view.
func (s *Snapshot) Load() StackState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	st.Stack = make([]domain.StateID, len(s.state.Stack))
	copy(st.Stack, s.state.Stack)
	return st
}
