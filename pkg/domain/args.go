package domain

// Args is the ordered, untyped argument list a transition hands to the entered state.
type Args []any

// Len returns the number of arguments.
func (a Args) Len() int { return len(a) }

// Arg returns the i-th argument converted to T.
// It reports false when the index is out of range or the value has a different type.
func Arg[T any](a Args, i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(a) {
		return zero, false
	}
	v, ok := a[i].(T)
	if !ok {
		return zero, false
	}
	return v, true
}
