package dsl

import (
	"fmt"

	"github.com/aretw0/hsm"
	"github.com/aretw0/hsm/pkg/domain"
)

// Builder collects closure-backed state definitions.
type Builder[O any] struct {
	states map[domain.StateID]*StateBuilder[O]
	order  []domain.StateID
}

// New creates a new state builder for machines owned by O.
func New[O any]() *Builder[O] {
	return &Builder[O]{
		states: make(map[domain.StateID]*StateBuilder[O]),
	}
}

// State starts or resumes the definition of id.
// If the state already exists, it returns the existing builder.
func (b *Builder[O]) State(id domain.StateID) *StateBuilder[O] {
	if sb, ok := b.states[id]; ok {
		return sb
	}
	sb := &StateBuilder[O]{id: id, builder: b}
	b.states[id] = sb
	b.order = append(b.order, id)
	return sb
}

// Build registers every defined state into a new registry.
func (b *Builder[O]) Build() (*hsm.Registry[O], error) {
	reg := hsm.NewRegistry[O]()
	if err := b.Into(reg); err != nil {
		return nil, fmt.Errorf("failed to build registry: %w", err)
	}
	return reg, nil
}

// Into registers every defined state into reg, in definition order.
// Seeded children must be registered in reg once all states are added.
func (b *Builder[O]) Into(reg *hsm.Registry[O]) error {
	for _, id := range b.order {
		sb := b.states[id]
		if err := reg.Register(id, sb.factory()); err != nil {
			return err
		}
		if sb.spec.description != "" {
			reg.Describe(id, sb.spec.description)
		}
	}
	for _, id := range b.order {
		if child := b.states[id].spec.seed; child != "" && !reg.Has(child) {
			return fmt.Errorf("%w: %s seeds %s", domain.ErrUnknownState, id, child)
		}
	}
	return nil
}
