package domain

import (
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStateEnter EventType = "state_enter"
	EventStateExit  EventType = "state_exit"
	EventTransition EventType = "transition"
	EventTick       EventType = "tick"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Machine   string    `json:"machine"`
}

// StateEvent reports a push (after Enter) or a pop (after Exit and rollback).
type StateEvent struct {
	EventBase
	StateID StateID `json:"state_id"`
	Depth   int     `json:"depth"`
}

// TransitionEvent reports a transition that is about to mutate the stack.
type TransitionEvent struct {
	EventBase
	Kind        TransitionKind `json:"kind"`
	Source      StateID        `json:"source,omitempty"` // empty for the implicit initial push
	SourceDepth int            `json:"source_depth"`
	Target      StateID        `json:"target"`
}

// TickEvent summarises one tick once the late-update phase has finished.
type TickEvent struct {
	EventBase
	Scans    int           `json:"scans"`
	Settled  bool          `json:"settled"`
	Depth    int           `json:"depth"` // stack length after the tick
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability.
// Any field may be nil.
type LifecycleHooks struct {
	OnStateEnter func(*StateEvent)
	OnStateExit  func(*StateEvent)
	OnTransition func(*TransitionEvent)
	OnTick       func(*TickEvent)
}

// IsZero reports whether no callback is set.
func (h LifecycleHooks) IsZero() bool {
	return h.OnStateEnter == nil && h.OnStateExit == nil && h.OnTransition == nil && h.OnTick == nil
}

// MergeHooks returns hooks that invoke every non-nil callback of each input, in argument order.
func MergeHooks(all ...LifecycleHooks) LifecycleHooks {
	var merged LifecycleHooks
	for _, h := range all {
		h := h
		if h.OnStateEnter != nil {
			prev := merged.OnStateEnter
			merged.OnStateEnter = func(e *StateEvent) {
				if prev != nil {
					prev(e)
				}
				h.OnStateEnter(e)
			}
		}
		if h.OnStateExit != nil {
			prev := merged.OnStateExit
			merged.OnStateExit = func(e *StateEvent) {
				if prev != nil {
					prev(e)
				}
				h.OnStateExit(e)
			}
		}
		if h.OnTransition != nil {
			prev := merged.OnTransition
			merged.OnTransition = func(e *TransitionEvent) {
				if prev != nil {
					prev(e)
				}
				h.OnTransition(e)
			}
		}
		if h.OnTick != nil {
			prev := merged.OnTick
			merged.OnTick = func(e *TickEvent) {
				if prev != nil {
					prev(e)
				}
				h.OnTick(e)
			}
		}
	}
	return merged
}
