package hsm

import (
	"log/slog"

	"github.com/aretw0/hsm/pkg/domain"
)

// MaxScans bounds the number of scans a single tick may perform before the
// resolution is treated as a runaway oscillation.
const MaxScans = 100

type config struct {
	name      string
	sink      Sink
	verbosity domain.Verbosity
	hooks     domain.LifecycleHooks
	strict    bool
}

func defaultConfig() config {
	return config{
		name:      "hsm",
		sink:      NewLogSink(nil),
		verbosity: domain.VerbosityNone,
		strict:    debugContracts,
	}
}

// Option defines a functional option for configuring a Machine.
type Option func(*config)

// WithName sets the name reported to the sink and to lifecycle hooks.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithSink sets the diagnostics sink.
func WithSink(sink Sink) Option {
	return func(c *config) {
		if sink != nil {
			c.sink = sink
		}
	}
}

// WithLogger sets a structured logger as the diagnostics sink.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.sink = NewLogSink(logger)
	}
}

// WithVerbosity sets the initial diagnostic verbosity.
func WithVerbosity(v domain.Verbosity) Option {
	return func(c *config) {
		c.verbosity = v
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.hooks = domain.MergeHooks(c.hooks, hooks)
	}
}

// WithStrictContracts makes contract violations panic instead of being logged.
// It defaults to true in builds tagged hsmdebug.
func WithStrictContracts(strict bool) Option {
	return func(c *config) {
		c.strict = strict
	}
}
