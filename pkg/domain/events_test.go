package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeHooks(t *testing.T) {
	var calls []string
	a := LifecycleHooks{
		OnStateEnter: func(e *StateEvent) { calls = append(calls, "a:enter:"+string(e.StateID)) },
		OnTick:       func(*TickEvent) { calls = append(calls, "a:tick") },
	}
	b := LifecycleHooks{
		OnStateEnter: func(e *StateEvent) { calls = append(calls, "b:enter:"+string(e.StateID)) },
		OnStateExit:  func(e *StateEvent) { calls = append(calls, "b:exit:"+string(e.StateID)) },
	}

	merged := MergeHooks(a, LifecycleHooks{}, b)

	merged.OnStateEnter(&StateEvent{StateID: "patrol"})
	merged.OnStateExit(&StateEvent{StateID: "patrol"})
	merged.OnTick(&TickEvent{})

	assert.Nil(t, merged.OnTransition)
	assert.Equal(t, []string{"a:enter:patrol", "b:enter:patrol", "b:exit:patrol", "a:tick"}, calls)
}

func TestLifecycleHooksIsZero(t *testing.T) {
	assert.True(t, LifecycleHooks{}.IsZero())
	assert.True(t, MergeHooks().IsZero())
	assert.False(t, LifecycleHooks{OnTick: func(*TickEvent) {}}.IsZero())
}
