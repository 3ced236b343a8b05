package hsm

import (
	"time"

	"github.com/aretw0/hsm/pkg/domain"
)

// State is the unit of behavior held on a Machine's stack.
//
// Implementations embed Base[O], which supplies the binding to the machine and no-op
// defaults for every hook, and override the hooks they need. Entry is optional and
// declared through Enterer or ArgsEnterer.
type State[O any] interface {
	// Exit runs once when the state is popped, before its StateValues roll back.
	Exit()
	// Transition reports the state's desired transition. It must not mutate the stack
	// and may be called any number of times within one scan.
	Transition() domain.Transition
	// Update runs once per tick, outer to inner.
	Update(dt time.Duration)
	// LateUpdate runs once per tick after every state has been updated.
	LateUpdate()

	base() *Base[O]
}

// Enterer is implemented by states entered without arguments.
type Enterer interface {
	Enter()
}

// ArgsEnterer is implemented by states that expect the transition's arguments.
type ArgsEnterer interface {
	EnterArgs(args domain.Args)
}

// Base binds a state to its machine for the length of one activation.
// Embed it by value in every state type.
type Base[O any] struct {
	machine *Machine[O]
	id      domain.StateID
	depth   int
	act     *activation
	used    bool
}

func (b *Base[O]) base() *Base[O] { return b }

// Depth returns the stack index of the state, 0 being the outermost.
// It returns -1 when the state is not on a stack.
func (b *Base[O]) Depth() int {
	if b.act == nil {
		return -1
	}
	return b.depth
}

// ID returns the identifier the state was pushed under.
func (b *Base[O]) ID() domain.StateID { return b.id }

// Machine returns the owning machine, or nil once the state has been popped.
func (b *Base[O]) Machine() *Machine[O] { return b.machine }

// Owner returns the machine's owner. The zero value is returned when the state is inactive.
func (b *Base[O]) Owner() O {
	if b.machine == nil {
		var zero O
		return zero
	}
	return b.machine.owner
}

// Active reports whether the state is currently on a stack.
func (b *Base[O]) Active() bool { return b.act != nil }

// Exit is a no-op.
func (b *Base[O]) Exit() {}

// Transition returns domain.None().
func (b *Base[O]) Transition() domain.Transition { return domain.None() }

// Update is a no-op.
func (b *Base[O]) Update(time.Duration) {}

// LateUpdate is a no-op.
func (b *Base[O]) LateUpdate() {}

func (b *Base[O]) activation() *activation { return b.act }

func (b *Base[O]) bind(m *Machine[O], id domain.StateID, depth int) {
	b.machine = m
	b.id = id
	b.depth = depth
	b.act = &activation{}
	b.used = true
}

// unbind rolls back every StateValue touched during the activation and detaches the state.
func (b *Base[O]) unbind() {
	if b.act != nil {
		b.act.rollback()
	}
	b.act = nil
	b.machine = nil
}
