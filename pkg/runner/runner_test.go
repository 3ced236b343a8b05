package runner_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hsm/pkg/runner"
)

type countingTicker struct {
	ticks   int
	dts     []time.Duration
	stopped int
	onTick  func(n int)
}

func (c *countingTicker) Tick(dt time.Duration) {
	c.ticks++
	c.dts = append(c.dts, dt)
	if c.onTick != nil {
		c.onTick(c.ticks)
	}
}

func (c *countingTicker) Stop() { c.stopped++ }

func TestRun_MaxTicks(t *testing.T) {
	c := &countingTicker{}
	var frames []runner.Frame

	r := runner.New(c,
		runner.WithMaxTicks(3),
		runner.WithStep(10*time.Millisecond),
		runner.WithOnFrame(func(f runner.Frame) { frames = append(frames, f) }),
	)
	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, 3, c.ticks)
	assert.Equal(t, 1, c.stopped)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 10 * time.Millisecond, 10 * time.Millisecond}, c.dts)
	require.Len(t, frames, 3)
	assert.Equal(t, 2, frames[2].Index)
	assert.Equal(t, 30*time.Millisecond, frames[2].Elapsed)
}

func TestRun_DefaultStep(t *testing.T) {
	c := &countingTicker{}
	require.NoError(t, runner.New(c, runner.WithMaxTicks(1), runner.WithStep(0)).Run(context.Background()))
	assert.Equal(t, []time.Duration{runner.DefaultStep}, c.dts)
}

func TestRun_CancelStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := &countingTicker{onTick: func(n int) {
		if n == 5 {
			cancel()
		}
	}}

	err := runner.New(c).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 5, c.ticks)
	assert.Equal(t, 1, c.stopped)
}

func TestRun_PacedByInterval(t *testing.T) {
	c := &countingTicker{}
	start := time.Now()
	r := runner.New(c, runner.WithMaxTicks(3), runner.WithInterval(5*time.Millisecond))
	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, 3, c.ticks)
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func TestRun_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &countingTicker{}
	err := runner.New(c, runner.WithInterval(time.Hour)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, c.ticks)
	assert.Equal(t, 1, c.stopped)
}

func TestSignalContext_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := runner.SignalContext(parent)
	defer stop()

	cancel()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("signal context did not follow its parent")
	}
}
