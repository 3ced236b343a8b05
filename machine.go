package hsm

import (
	"fmt"
	"time"

	"github.com/aretw0/hsm/pkg/domain"
)

// Machine owns a stack of nested states and resolves their transitions each tick.
//
// Index 0 of the stack is the outermost state. The stack is empty before the first
// tick and after Stop; otherwise it is a contiguous chain of depths 0..Len()-1.
// A Machine is not safe for concurrent use; drive it from a single goroutine.
type Machine[O any] struct {
	registry *Registry[O]
	initial  domain.StateID
	owner    O
	cfg      config

	stack   []State[O]
	ticking bool
}

// NewMachine creates a machine that starts in initial on its first tick.
// Nothing is pushed until then.
func NewMachine[O any](reg *Registry[O], initial domain.StateID, owner O, opts ...Option) *Machine[O] {
	m := &Machine[O]{
		registry: reg,
		initial:  initial,
		owner:    owner,
		cfg:      defaultConfig(),
	}
	for _, opt := range opts {
		opt(&m.cfg)
	}
	return m
}

// Owner returns the value the machine was created with.
func (m *Machine[O]) Owner() O { return m.owner }

// Name returns the name reported to the sink and hooks.
func (m *Machine[O]) Name() string { return m.cfg.name }

// Initial returns the identifier of the state pushed at depth 0 on an empty stack.
func (m *Machine[O]) Initial() domain.StateID { return m.initial }

// Registry returns the registry states are built from.
func (m *Machine[O]) Registry() *Registry[O] { return m.registry }

// Len returns the number of active states.
func (m *Machine[O]) Len() int { return len(m.stack) }

// Running reports whether any state is active.
func (m *Machine[O]) Running() bool { return len(m.stack) > 0 }

// At returns the state at depth, or nil when depth is out of range.
func (m *Machine[O]) At(depth int) State[O] {
	if depth < 0 || depth >= len(m.stack) {
		return nil
	}
	return m.stack[depth]
}

// Stack returns the identifiers of the active states, outermost first.
func (m *Machine[O]) Stack() []domain.StateID {
	ids := make([]domain.StateID, len(m.stack))
	for i, s := range m.stack {
		ids[i] = s.base().id
	}
	return ids
}

// IndexOf returns the depth of the outermost active state pushed as id, or -1.
func (m *Machine[O]) IndexOf(id domain.StateID) int {
	for i, s := range m.stack {
		if s.base().id == id {
			return i
		}
	}
	return -1
}

// Verbosity returns the current diagnostic verbosity.
func (m *Machine[O]) Verbosity() domain.Verbosity { return m.cfg.verbosity }

// SetVerbosity changes the diagnostic verbosity.
func (m *Machine[O]) SetVerbosity(v domain.Verbosity) { m.cfg.verbosity = v }

// Tick resolves transitions until the stack settles, then runs Update on every
// state outer to inner, then LateUpdate on every state outer to inner.
func (m *Machine[O]) Tick(dt time.Duration) {
	if m.ticking {
		m.violation(fmt.Errorf("%w: machine %s", domain.ErrReentrantTick, m.cfg.name))
		return
	}
	m.ticking = true
	defer func() { m.ticking = false }()

	var started time.Time
	if m.cfg.hooks.OnTick != nil {
		started = time.Now()
	}

	scans, settled := m.resolve()

	// The stack may shrink if a state stops the machine from its hook.
	for i := 0; i < len(m.stack); i++ {
		m.stack[i].Update(dt)
	}
	for i := 0; i < len(m.stack); i++ {
		m.stack[i].LateUpdate()
	}

	if m.cfg.hooks.OnTick != nil {
		m.cfg.hooks.OnTick(&domain.TickEvent{
			EventBase: m.event(domain.EventTick),
			Scans:     scans,
			Settled:   settled,
			Depth:     len(m.stack),
			Duration:  time.Since(started),
		})
	}
}

// Stop pops every state innermost first, running Exit and rollback for each.
// The next Tick starts again from the initial state.
func (m *Machine[O]) Stop() {
	if len(m.stack) == 0 {
		return
	}
	m.logf(domain.VerbosityBasic, "stopping from depth %d", len(m.stack)-1)
	m.popTo(0)
}

// Shutdown is Stop, for owners that tear the machine down for good.
func (m *Machine[O]) Shutdown() {
	m.Stop()
}

// resolve scans the stack until a scan applies no mutation or MaxScans is reached.
// It returns the number of scans performed and whether the stack settled.
func (m *Machine[O]) resolve() (int, bool) {
	for n := 1; n <= MaxScans; n++ {
		if !m.scan(n) {
			return n, true
		}
	}
	m.cfg.verbosity = domain.VerbosityDiagnostic
	m.cfg.sink.LogError(m, fmt.Sprintf("%v: stack did not settle within %d scans", domain.ErrRunaway, MaxScans))
	return MaxScans, false
}

// scan queries every depth outer to inner and applies the first transition that
// mutates the stack. It reports whether a mutation happened.
func (m *Machine[O]) scan(n int) bool {
	if len(m.stack) == 0 {
		return m.apply(-1, domain.Inner(m.initial))
	}
	for d := 0; d < len(m.stack); d++ {
		t := m.stack[d].Transition()
		if t.IsNone() {
			continue
		}
		if m.apply(d, t) {
			m.logf(domain.VerbosityDiagnostic, "scan %d: depth %d applied %s", n, d, t)
			return true
		}
	}
	m.logf(domain.VerbosityDiagnostic, "scan %d: settled", n)
	return false
}

// apply performs t as issued by the state at depth d. d is -1 for the implicit initial push.
func (m *Machine[O]) apply(d int, t domain.Transition) bool {
	target := t.Target()
	var at int

	switch t.Kind() {
	case domain.KindInner:
		at = d + 1
		if at < len(m.stack) && m.stack[at].base().id == target {
			return false
		}
	case domain.KindInnerEntry:
		at = d + 1
		if at < len(m.stack) {
			return false
		}
	case domain.KindSibling:
		at = d
	default:
		return false
	}

	if !m.registry.Has(target) {
		m.violation(fmt.Errorf("%w: %s targeted by %s at depth %d", domain.ErrUnknownState, target, t.Kind(), d))
		return false
	}

	var source domain.StateID
	if d >= 0 {
		source = m.stack[d].base().id
	}
	m.logf(domain.VerbosityBasic, "%s from %q at depth %d to %s", t.Kind(), source, d, target)
	if m.cfg.hooks.OnTransition != nil {
		m.cfg.hooks.OnTransition(&domain.TransitionEvent{
			EventBase:   m.event(domain.EventTransition),
			Kind:        t.Kind(),
			Source:      source,
			SourceDepth: d,
			Target:      target,
		})
	}

	popped := len(m.stack) > at
	m.popTo(at)
	return m.push(target, t.Args()) || popped
}

// popTo pops states until the stack holds exactly depth states.
func (m *Machine[O]) popTo(depth int) {
	for len(m.stack) > depth {
		m.pop()
	}
}

func (m *Machine[O]) pop() {
	last := len(m.stack) - 1
	s := m.stack[last]
	b := s.base()
	id := b.id
	m.logf(domain.VerbosityDiagnostic, "pop %s at depth %d", id, last)

	s.Exit()
	b.unbind()

	m.stack[last] = nil
	m.stack = m.stack[:last]

	if m.cfg.hooks.OnStateExit != nil {
		m.cfg.hooks.OnStateExit(&domain.StateEvent{
			EventBase: m.event(domain.EventStateExit),
			StateID:   id,
			Depth:     last,
		})
	}
}

// push builds a fresh instance of id on top of the stack and enters it.
// It reports false when no instance could be built.
func (m *Machine[O]) push(id domain.StateID, args domain.Args) bool {
	s, err := m.registry.New(id)
	if err != nil {
		m.violation(err)
		return false
	}
	b := s.base()
	if b.used {
		m.violation(fmt.Errorf("factory for state %s returned an instance that was already pushed", id))
		return false
	}

	depth := len(m.stack)
	b.bind(m, id, depth)
	m.stack = append(m.stack, s)
	m.logf(domain.VerbosityDiagnostic, "push %s at depth %d", id, depth)

	m.checkEnterArgs(id, s, len(args) > 0)
	enter(s, args)

	if m.cfg.hooks.OnStateEnter != nil {
		m.cfg.hooks.OnStateEnter(&domain.StateEvent{
			EventBase: m.event(domain.EventStateEnter),
			StateID:   id,
			Depth:     depth,
		})
	}
	return true
}

// enter invokes the entry hook matching the supplied arguments.
func enter[O any](s State[O], args domain.Args) {
	plain, isPlain := s.(Enterer)
	withArgs, isArgs := s.(ArgsEnterer)
	switch {
	case len(args) > 0 && isArgs:
		withArgs.EnterArgs(args)
	case isPlain:
		plain.Enter()
	case isArgs:
		withArgs.EnterArgs(args)
	}
}

func (m *Machine[O]) logf(level domain.Verbosity, format string, args ...any) {
	if m.cfg.verbosity < level {
		return
	}
	m.cfg.sink.Log(m, fmt.Sprintf(format, args...))
}

func (m *Machine[O]) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		Machine:   m.cfg.name,
	}
}
