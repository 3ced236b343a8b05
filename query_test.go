package hsm_test

import (
	"errors"
	"testing"

	"github.com/aretw0/hsm"
	"github.com/aretw0/hsm/internal/testutils"
	"github.com/aretw0/hsm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type alpha struct{ scripted }

type beta struct{ scripted }

// greeter is a capability only beta implements.
type greeter interface {
	Greet() bool
}

func (s *beta) Greet() bool {
	w := s.Owner()
	w.record("greet:%s", s.ID())
	return s.ID() != w.refuse
}

// layeredMachine builds the stack [a0:alpha, b1:beta, a2:alpha, b3:beta].
func layeredMachine(t *testing.T, opts ...hsm.Option) (*world, *hsm.Machine[*world]) {
	t.Helper()
	w := newWorld()
	w.rules["a0"] = always(domain.InnerEntry("b1"))
	w.rules["b1"] = always(domain.InnerEntry("a2"))
	w.rules["a2"] = always(domain.InnerEntry("b3"))

	reg := hsm.NewRegistry[*world]()
	reg.MustRegister("a0", func() hsm.State[*world] { return &alpha{} })
	reg.MustRegister("b1", func() hsm.State[*world] { return &beta{} })
	reg.MustRegister("a2", func() hsm.State[*world] { return &alpha{} })
	reg.MustRegister("b3", func() hsm.State[*world] { return &beta{} })

	m := hsm.NewMachine(reg, "a0", w, opts...)
	m.Tick(frame)
	require.Equal(t, []domain.StateID{"a0", "b1", "a2", "b3"}, m.Stack())
	w.reset()
	return w, m
}

func idOf(t *testing.T, s interface{ ID() domain.StateID }, ok bool) domain.StateID {
	t.Helper()
	if !ok {
		return ""
	}
	return s.ID()
}

func TestFindOuter(t *testing.T) {
	_, m := layeredMachine(t)

	s, ok := hsm.FindOuter[*alpha](m, 3)
	assert.Equal(t, domain.StateID("a2"), idOf(t, s, ok))

	s, ok = hsm.FindOuter[*alpha](m, 2)
	assert.Equal(t, domain.StateID("a0"), idOf(t, s, ok))

	_, ok = hsm.FindOuter[*alpha](m, 0)
	assert.False(t, ok, "the search is strictly outward")

	_, ok = hsm.FindOuter[*beta](m, 1)
	assert.False(t, ok)

	b, ok := hsm.FindOuter[*beta](m, 99)
	assert.Equal(t, domain.StateID("b3"), idOf(t, b, ok))
}

func TestFindInner(t *testing.T) {
	_, m := layeredMachine(t)

	a, ok := hsm.FindInner[*alpha](m, 0)
	assert.Equal(t, domain.StateID("a2"), idOf(t, a, ok))

	b, ok := hsm.FindInner[*beta](m, 1)
	assert.Equal(t, domain.StateID("b3"), idOf(t, b, ok))

	_, ok = hsm.FindInner[*alpha](m, 2)
	assert.False(t, ok)

	b, ok = hsm.Find[*beta](m)
	assert.Equal(t, domain.StateID("b1"), idOf(t, b, ok))

	g, ok := hsm.Find[greeter](m)
	require.True(t, ok)
	assert.Same(t, m.At(1), g.(hsm.State[*world]))
}

func TestFindImmediateInner(t *testing.T) {
	_, m := layeredMachine(t)

	b, ok := hsm.FindImmediateInner[*beta](m, 0)
	assert.Equal(t, domain.StateID("b1"), idOf(t, b, ok))

	_, ok = hsm.FindImmediateInner[*beta](m, 1)
	assert.False(t, ok, "depth+1 only")

	a, ok := hsm.FindImmediateInner[*alpha](m, -1)
	assert.Equal(t, domain.StateID("a0"), idOf(t, a, ok))

	_, ok = hsm.FindImmediateInner[*alpha](m, 3)
	assert.False(t, ok)
}

func TestGetQueries(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		_, m := layeredMachine(t, hsm.WithStrictContracts(true))
		assert.Equal(t, domain.StateID("a0"), hsm.GetOuter[*alpha](m, 1).ID())
		assert.Equal(t, domain.StateID("b3"), hsm.GetInner[*beta](m, 2).ID())
		assert.Equal(t, domain.StateID("a2"), hsm.GetImmediateInner[*alpha](m, 1).ID())
	})

	t.Run("strict absence panics", func(t *testing.T) {
		_, m := layeredMachine(t, hsm.WithStrictContracts(true))
		for name, fn := range map[string]func(){
			"outer":     func() { hsm.GetOuter[*beta](m, 1) },
			"inner":     func() { hsm.GetInner[*alpha](m, 2) },
			"immediate": func() { hsm.GetImmediateInner[*beta](m, 1) },
		} {
			err := testutils.RecoverErr(fn)
			assert.True(t, errors.Is(err, domain.ErrStateNotFound), "%s: got %v", name, err)
		}
	})

	t.Run("release absence logs", func(t *testing.T) {
		sink := &testutils.Sink{}
		_, m := layeredMachine(t, hsm.WithStrictContracts(false), hsm.WithSink(sink))

		assert.Nil(t, hsm.GetOuter[*beta](m, 1))
		require.Len(t, sink.Errors(), 1)
		assert.Contains(t, sink.Errors()[0].Msg, "*hsm_test.beta")
	})
}

func TestMachine_IndexOf(t *testing.T) {
	_, m := layeredMachine(t)
	assert.Equal(t, 2, m.IndexOf("a2"))
	assert.Equal(t, -1, m.IndexOf("zz"))
	assert.Nil(t, m.At(4))
	assert.Nil(t, m.At(-1))
}
