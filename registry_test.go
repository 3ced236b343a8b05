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

func TestRegistry(t *testing.T) {
	reg := hsm.NewRegistry[*world]()
	factory := func() hsm.State[*world] { return &scripted{} }

	require.NoError(t, reg.Register("patrol", factory))
	require.NoError(t, reg.Register("chase", factory))
	reg.Describe("patrol", "walks the route")

	t.Run("duplicate", func(t *testing.T) {
		err := reg.Register("patrol", factory)
		assert.True(t, errors.Is(err, domain.ErrDuplicateState))
	})

	t.Run("invalid registrations", func(t *testing.T) {
		assert.Error(t, reg.Register("", factory))
		assert.Error(t, reg.Register("nil", nil))
		assert.Panics(t, func() { reg.MustRegister("chase", factory) })
	})

	t.Run("lookup", func(t *testing.T) {
		assert.True(t, reg.Has("chase"))
		assert.False(t, reg.Has("sleep"))
		assert.Equal(t, []domain.StateID{"chase", "patrol"}, reg.IDs())
		assert.Equal(t, "walks the route", reg.Description("patrol"))
		assert.Empty(t, reg.Description("chase"))
	})

	t.Run("new builds fresh instances", func(t *testing.T) {
		a, err := reg.New("patrol")
		require.NoError(t, err)
		b, err := reg.New("patrol")
		require.NoError(t, err)
		assert.NotSame(t, a, b)

		_, err = reg.New("sleep")
		assert.True(t, errors.Is(err, domain.ErrUnknownState))
	})
}

func TestMachine_ReusedInstanceIsRejected(t *testing.T) {
	shared := &scripted{}
	w := newWorld()
	w.rules["A"] = always(domain.InnerEntry("B"))
	reg := hsm.NewRegistry[*world]()
	reg.MustRegister("A", func() hsm.State[*world] { return &scripted{} })
	reg.MustRegister("B", func() hsm.State[*world] { return shared })

	sink := &testutils.Sink{}
	m := hsm.NewMachine(reg, "A", w, hsm.WithSink(sink), hsm.WithStrictContracts(false))
	m.Tick(frame)
	require.Equal(t, []domain.StateID{"A", "B"}, m.Stack())

	m.Stop()
	m.Tick(frame)
	assert.Equal(t, []domain.StateID{"A"}, m.Stack())
	assert.NotEmpty(t, sink.Errors())
}
