package dsl

import (
	"time"

	"github.com/aretw0/hsm"
	"github.com/aretw0/hsm/pkg/domain"
)

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder[O any] struct {
	id      domain.StateID
	spec    spec[O]
	builder *Builder[O]
}

type spec[O any] struct {
	description string
	seed        domain.StateID
	enter       func(*Func[O])
	enterArgs   func(*Func[O], domain.Args)
	exit        func(*Func[O])
	update      func(*Func[O], time.Duration)
	lateUpdate  func(*Func[O])
	transition  func(*Func[O]) domain.Transition
}

// Describe attaches a description, exposed through the registry.
func (s *StateBuilder[O]) Describe(text string) *StateBuilder[O] {
	s.spec.description = text
	return s
}

// OnEnter runs fn when the state is entered without arguments.
func (s *StateBuilder[O]) OnEnter(fn func(*Func[O])) *StateBuilder[O] {
	s.spec.enter = fn
	return s
}

// OnEnterArgs runs fn when the state is entered with arguments.
// A state with OnEnterArgs and no OnEnter requires arguments.
func (s *StateBuilder[O]) OnEnterArgs(fn func(*Func[O], domain.Args)) *StateBuilder[O] {
	s.spec.enterArgs = fn
	return s
}

// OnExit runs fn when the state is popped.
func (s *StateBuilder[O]) OnExit(fn func(*Func[O])) *StateBuilder[O] {
	s.spec.exit = fn
	return s
}

// OnUpdate runs fn every tick.
func (s *StateBuilder[O]) OnUpdate(fn func(*Func[O], time.Duration)) *StateBuilder[O] {
	s.spec.update = fn
	return s
}

// OnLateUpdate runs fn every tick after all updates.
func (s *StateBuilder[O]) OnLateUpdate(fn func(*Func[O])) *StateBuilder[O] {
	s.spec.lateUpdate = fn
	return s
}

// Transition sets the transition query. It is consulted before Seed.
func (s *StateBuilder[O]) Transition(fn func(*Func[O]) domain.Transition) *StateBuilder[O] {
	s.spec.transition = fn
	return s
}

// Seed makes the state push child as its first inner state (an InnerEntry) whenever
// the transition query has nothing else to do.
func (s *StateBuilder[O]) Seed(child domain.StateID) *StateBuilder[O] {
	s.spec.seed = child
	return s
}

// State continues with the definition of another state.
func (s *StateBuilder[O]) State(id domain.StateID) *StateBuilder[O] {
	return s.builder.State(id)
}

func (s *StateBuilder[O]) factory() hsm.Factory[O] {
	sp := s.spec
	switch {
	case sp.enter != nil && sp.enterArgs != nil:
		return func() hsm.State[O] { return &bothFunc[O]{Func[O]{spec: &sp}} }
	case sp.enterArgs != nil:
		return func() hsm.State[O] { return &argsFunc[O]{Func[O]{spec: &sp}} }
	case sp.enter != nil:
		return func() hsm.State[O] { return &plainFunc[O]{Func[O]{spec: &sp}} }
	default:
		return func() hsm.State[O] { return &Func[O]{spec: &sp} }
	}
}

// Func is the state built from a definition. Callbacks receive it to reach the
// machine, the owner and the stack position.
type Func[O any] struct {
	hsm.Base[O]
	spec *spec[O]
}

// Exit implements hsm.State.
func (f *Func[O]) Exit() {
	if f.spec.exit != nil {
		f.spec.exit(f)
	}
}

// Transition implements hsm.State.
func (f *Func[O]) Transition() domain.Transition {
	if f.spec.transition != nil {
		if t := f.spec.transition(f); !t.IsNone() {
			return t
		}
	}
	if f.spec.seed != "" {
		return domain.InnerEntry(f.spec.seed)
	}
	return domain.None()
}

// Update implements hsm.State.
func (f *Func[O]) Update(dt time.Duration) {
	if f.spec.update != nil {
		f.spec.update(f, dt)
	}
}

// LateUpdate implements hsm.State.
func (f *Func[O]) LateUpdate() {
	if f.spec.lateUpdate != nil {
		f.spec.lateUpdate(f)
	}
}

type plainFunc[O any] struct{ Func[O] }

func (f *plainFunc[O]) Enter() { f.spec.enter(&f.Func) }

type argsFunc[O any] struct{ Func[O] }

func (f *argsFunc[O]) EnterArgs(args domain.Args) { f.spec.enterArgs(&f.Func, args) }

type bothFunc[O any] struct{ Func[O] }

func (f *bothFunc[O]) Enter() { f.spec.enter(&f.Func) }

func (f *bothFunc[O]) EnterArgs(args domain.Args) { f.spec.enterArgs(&f.Func, args) }
