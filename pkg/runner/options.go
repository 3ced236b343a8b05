package runner

import (
	"log/slog"
	"time"
)

// DefaultStep is the simulated time passed to every tick unless WithStep is used.
const DefaultStep = 16 * time.Millisecond

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithStep sets the delta handed to each tick.
func WithStep(dt time.Duration) Option {
	return func(r *Runner) {
		if dt > 0 {
			r.step = dt
		}
	}
}

// WithInterval sets the wall-clock pause between ticks. Zero runs as fast as possible.
func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		r.interval = d
	}
}

// WithMaxTicks stops the runner after n ticks. Zero or less means no limit.
func WithMaxTicks(n int) Option {
	return func(r *Runner) {
		r.maxTicks = n
	}
}

// WithOnFrame registers a callback invoked after every tick.
func WithOnFrame(fn func(Frame)) Option {
	return func(r *Runner) {
		r.onFrame = fn
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}
