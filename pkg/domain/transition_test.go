package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionFactories(t *testing.T) {
	tests := []struct {
		name     string
		t        Transition
		kind     TransitionKind
		target   StateID
		hasArgs  bool
		rendered string
	}{
		{"none", None(), KindNone, "", false, "none"},
		{"inner", Inner("chase"), KindInner, "chase", false, "inner(chase)"},
		{"inner with args", Inner("chase", "intruder", 2), KindInner, "chase", true, "inner(chase, intruder, 2)"},
		{"inner entry", InnerEntry("patrol"), KindInnerEntry, "patrol", false, "inner_entry(patrol)"},
		{"sibling", Sibling("rest", 1.5), KindSibling, "rest", true, "sibling(rest, 1.5)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.t.Kind())
			assert.Equal(t, tt.target, tt.t.Target())
			assert.Equal(t, tt.hasArgs, tt.t.HasArgs())
			assert.Equal(t, tt.kind == KindNone, tt.t.IsNone())
			assert.Equal(t, tt.rendered, tt.t.String())
		})
	}
}

func TestNoneIsShared(t *testing.T) {
	assert.Equal(t, None(), None())
	assert.Equal(t, Transition{}, None())
	assert.Nil(t, None().Args())
}

func TestTransitionArgsAreCopied(t *testing.T) {
	src := []any{"a", "b"}
	tr := Inner("x", src...)
	src[0] = "mutated"

	args := tr.Args()
	assert.Equal(t, Args{"a", "b"}, args)

	args[1] = "changed"
	assert.Equal(t, Args{"a", "b"}, tr.Args(), "Args returns a copy")
}

func TestArg(t *testing.T) {
	args := Args{"guard", 3, nil}

	s, ok := Arg[string](args, 0)
	assert.True(t, ok)
	assert.Equal(t, "guard", s)

	_, ok = Arg[string](args, 1)
	assert.False(t, ok, "wrong type")

	_, ok = Arg[int](args, 5)
	assert.False(t, ok, "out of range")

	_, ok = Arg[int](args, -1)
	assert.False(t, ok)

	assert.Equal(t, 3, args.Len())
}

func TestTransitionKindString(t *testing.T) {
	assert.Equal(t, "kind(9)", TransitionKind(9).String())
}
