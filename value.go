package hsm

// Scope is the activation a StateValue write is recorded against.
// Every state embedding Base satisfies it.
type Scope interface {
	activation() *activation
}

// StateValue is a variable whose writes are undone when the writing state exits.
//
// The first Set within an activation records the value as it was before that write;
// when the activation ends the recorded value is restored. Later writes in the same
// activation only change the current value.
type StateValue[T any] struct {
	value T
}

// NewStateValue creates a StateValue holding initial.
func NewStateValue[T any](initial T) *StateValue[T] {
	return &StateValue[T]{value: initial}
}

// Get returns the current value.
func (v *StateValue[T]) Get() T {
	return v.value
}

// Set writes val on behalf of scope.
// A nil or inactive scope writes the baseline without recording a snapshot.
func (v *StateValue[T]) Set(scope Scope, val T) {
	if scope != nil {
		if act := scope.activation(); act != nil && !act.touched(v) {
			prior := v.value
			act.record(v, func() { v.value = prior })
		}
	}
	v.value = val
}

// activation holds the rollback record of one Enter-to-Exit lifetime.
type activation struct {
	seen  map[any]struct{}
	undos []func()
}

func (a *activation) touched(key any) bool {
	_, ok := a.seen[key]
	return ok
}

func (a *activation) record(key any, undo func()) {
	if a.seen == nil {
		a.seen = make(map[any]struct{})
	}
	a.seen[key] = struct{}{}
	a.undos = append(a.undos, undo)
}

// rollback restores touched values newest first and clears the record.
func (a *activation) rollback() {
	for i := len(a.undos) - 1; i >= 0; i-- {
		a.undos[i]()
	}
	a.undos = nil
	a.seen = nil
}
