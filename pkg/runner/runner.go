package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/hsm/internal/logging"
)

// Ticker is anything that advances one frame at a time and can be unwound.
// *hsm.Machine satisfies it for every owner type.
type Ticker interface {
	Tick(dt time.Duration)
	Stop()
}

// Frame describes a completed tick.
type Frame struct {
	Index   int
	DT      time.Duration
	Elapsed time.Duration
}

// Runner drives a Ticker with a fixed step until it is told to stop.
type Runner struct {
	ticker   Ticker
	step     time.Duration
	interval time.Duration
	maxTicks int
	onFrame  func(Frame)
	logger   *slog.Logger
}

// New creates a runner for t. Without options it ticks with DefaultStep as fast as
// possible until the context is cancelled.
func New(t Ticker, opts ...Option) *Runner {
	r := &Runner{
		ticker: t,
		step:   DefaultStep,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run ticks until the tick limit is reached or ctx is done, then stops the ticker.
// It returns ctx.Err() when cancelled and nil otherwise.
func (r *Runner) Run(ctx context.Context) error {
	defer r.ticker.Stop()

	var pace <-chan time.Time
	if r.interval > 0 {
		t := time.NewTicker(r.interval)
		defer t.Stop()
		pace = t.C
	}

	r.logger.Debug("runner started", "step", r.step, "interval", r.interval, "max_ticks", r.maxTicks)
	var elapsed time.Duration
	for i := 0; r.maxTicks <= 0 || i < r.maxTicks; i++ {
		if pace != nil {
			select {
			case <-ctx.Done():
				return r.cancelled(ctx, i)
			case <-pace:
			}
		} else if ctx.Err() != nil {
			return r.cancelled(ctx, i)
		}

		r.ticker.Tick(r.step)
		elapsed += r.step
		if r.onFrame != nil {
			r.onFrame(Frame{Index: i, DT: r.step, Elapsed: elapsed})
		}
	}
	r.logger.Debug("runner finished", "ticks", r.maxTicks)
	return nil
}

func (r *Runner) cancelled(ctx context.Context, ticks int) error {
	r.logger.Debug("runner cancelled", "ticks", ticks, "err", ctx.Err())
	return ctx.Err()
}
