package domain

import (
	"fmt"
	"strings"
)

// StateID is the stable identifier of a state variant.
// Registries map a StateID to the factory that builds fresh instances of it.
type StateID string

// TransitionKind selects how the engine mutates the stack when a transition is applied.
type TransitionKind uint8

const (
	// KindNone requests no mutation. The scan continues with the next depth.
	KindNone TransitionKind = iota
	// KindInner ensures the immediate child has the target identity, replacing
	// the child (and everything below it) when it does not.
	KindInner
	// KindInnerEntry pushes the target as the immediate child only when no child exists.
	KindInnerEntry
	// KindSibling replaces the issuing state and everything below it with the target.
	KindSibling
)

func (k TransitionKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInner:
		return "inner"
	case KindInnerEntry:
		return "inner_entry"
	case KindSibling:
		return "sibling"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Transition describes the intent a state returns from its transition query.
// It is an immutable value; build it with None, Inner, InnerEntry or Sibling.
type Transition struct {
	kind   TransitionKind
	target StateID
	args   Args
}

// none is the shared None value. It carries no target and no arguments.
var none = Transition{}

// None returns the transition that requests no change.
func None() Transition {
	return none
}

// Inner targets the state immediately inside the issuing one.
func Inner(target StateID, args ...any) Transition {
	return newTransition(KindInner, target, args)
}

// InnerEntry seeds the immediate child once. It is a no-op when any child exists.
func InnerEntry(target StateID, args ...any) Transition {
	return newTransition(KindInnerEntry, target, args)
}

// Sibling replaces the issuing state with target at the same depth.
func Sibling(target StateID, args ...any) Transition {
	return newTransition(KindSibling, target, args)
}

func newTransition(kind TransitionKind, target StateID, args []any) Transition {
	t := Transition{kind: kind, target: target}
	if len(args) > 0 {
		t.args = make(Args, len(args))
		copy(t.args, args)
	}
	return t
}

// Kind returns the transition kind.
func (t Transition) Kind() TransitionKind { return t.kind }

// Target returns the identifier of the state to push.
func (t Transition) Target() StateID { return t.target }

// IsNone reports whether the transition requests no change.
func (t Transition) IsNone() bool { return t.kind == KindNone }

// HasArgs reports whether the transition carries at least one argument.
func (t Transition) HasArgs() bool { return len(t.args) > 0 }

// Args returns a copy of the argument list, or nil when none was supplied.
func (t Transition) Args() Args {
	if len(t.args) == 0 {
		return nil
	}
	out := make(Args, len(t.args))
	copy(out, t.args)
	return out
}

func (t Transition) String() string {
	if t.kind == KindNone {
		return "none"
	}
	var sb strings.Builder
	sb.WriteString(t.kind.String())
	sb.WriteString("(")
	sb.WriteString(string(t.target))
	for _, a := range t.args {
		sb.WriteString(", ")
		fmt.Fprintf(&sb, "%v", a)
	}
	sb.WriteString(")")
	return sb.String()
}
