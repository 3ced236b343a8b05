package hsm

import (
	"fmt"
	"reflect"

	"github.com/aretw0/hsm/pkg/domain"
)

// FindOuter returns the nearest state of type S strictly outward of depth (closer to the root).
func FindOuter[S any, O any](m *Machine[O], depth int) (S, bool) {
	if depth > len(m.stack) {
		depth = len(m.stack)
	}
	for i := depth - 1; i >= 0; i-- {
		if s, ok := m.stack[i].(S); ok {
			return s, true
		}
	}
	var zero S
	return zero, false
}

// FindInner returns the nearest state of type S strictly inward of depth.
// A depth of -1 searches the whole stack.
func FindInner[S any, O any](m *Machine[O], depth int) (S, bool) {
	if depth < -1 {
		depth = -1
	}
	for i := depth + 1; i < len(m.stack); i++ {
		if s, ok := m.stack[i].(S); ok {
			return s, true
		}
	}
	var zero S
	return zero, false
}

// FindImmediateInner returns the state at exactly depth+1 when it has type S.
func FindImmediateInner[S any, O any](m *Machine[O], depth int) (S, bool) {
	if i := depth + 1; i >= 0 && i < len(m.stack) {
		if s, ok := m.stack[i].(S); ok {
			return s, true
		}
	}
	var zero S
	return zero, false
}

// Find returns the outermost state of type S anywhere on the stack.
func Find[S any, O any](m *Machine[O]) (S, bool) {
	return FindInner[S](m, -1)
}

// GetOuter is FindOuter for states that must be present.
func GetOuter[S any, O any](m *Machine[O], depth int) S {
	s, ok := FindOuter[S](m, depth)
	if !ok {
		m.violation(notFound[S]("outward of", depth))
	}
	return s
}

// GetInner is FindInner for states that must be present.
func GetInner[S any, O any](m *Machine[O], depth int) S {
	s, ok := FindInner[S](m, depth)
	if !ok {
		m.violation(notFound[S]("inward of", depth))
	}
	return s
}

// GetImmediateInner is FindImmediateInner for states that must be present.
func GetImmediateInner[S any, O any](m *Machine[O], depth int) S {
	s, ok := FindImmediateInner[S](m, depth)
	if !ok {
		m.violation(notFound[S]("immediately inside", depth))
	}
	return s
}

func notFound[S any](where string, depth int) error {
	name := reflect.TypeOf((*S)(nil)).Elem().String()
	return fmt.Errorf("%w: no %s %s depth %d", domain.ErrStateNotFound, name, where, depth)
}
