package observability

import (
	"log/slog"

	"github.com/aretw0/hsm/pkg/domain"
)

// LogHooks returns lifecycle hooks that write every event to logger at debug level.
// Ticks that did not settle are logged as warnings.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateEnter: func(e *domain.StateEvent) {
			logger.Debug("state_enter", "machine", e.Machine, "state", e.StateID, "depth", e.Depth)
		},
		OnStateExit: func(e *domain.StateEvent) {
			logger.Debug("state_exit", "machine", e.Machine, "state", e.StateID, "depth", e.Depth)
		},
		OnTransition: func(e *domain.TransitionEvent) {
			logger.Debug("transition",
				"machine", e.Machine,
				"kind", e.Kind.String(),
				"source", e.Source,
				"depth", e.SourceDepth,
				"target", e.Target,
			)
		},
		OnTick: func(e *domain.TickEvent) {
			if !e.Settled {
				logger.Warn("tick_unsettled", "machine", e.Machine, "scans", e.Scans, "depth", e.Depth)
				return
			}
			logger.Debug("tick", "machine", e.Machine, "scans", e.Scans, "depth", e.Depth, "duration", e.Duration)
		},
	}
}
