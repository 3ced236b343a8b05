package hsm

// Order selects the direction of a stack walk.
type Order int

const (
	// OuterToInner walks from depth 0 to the innermost state.
	OuterToInner Order = iota
	// InnerToOuter walks from the innermost state to depth 0.
	InnerToOuter
)

func (o Order) String() string {
	if o == InnerToOuter {
		return "inner_to_outer"
	}
	return "outer_to_inner"
}

// Visit calls fn for each active state in order until fn returns false.
// It reports whether the walk reached the end of the stack.
// The walk runs over a copy of the stack; states popped by an earlier callback are skipped.
func (m *Machine[O]) Visit(order Order, fn func(State[O]) bool) bool {
	snapshot := make([]State[O], len(m.stack))
	copy(snapshot, m.stack)

	for i := range snapshot {
		s := snapshot[i]
		if order == InnerToOuter {
			s = snapshot[len(snapshot)-1-i]
		}
		if !s.base().Active() {
			continue
		}
		if !fn(s) {
			return false
		}
	}
	return true
}

// Broadcast invokes fn on every active state implementing the capability C, in order,
// skipping states that do not implement it. It stops at the first call returning false
// and reports whether every invocation returned true.
func Broadcast[C any, O any](m *Machine[O], order Order, fn func(C) bool) bool {
	return m.Visit(order, func(s State[O]) bool {
		c, ok := s.(C)
		if !ok {
			return true
		}
		return fn(c)
	})
}
