package hsm

import (
	"log/slog"

	"github.com/aretw0/hsm/internal/logging"
	"github.com/aretw0/hsm/pkg/domain"
)

// Inspector is the read-only view of a machine handed to a Sink.
type Inspector interface {
	Name() string
	Stack() []domain.StateID
}

// Sink receives the engine's diagnostic messages.
// The engine's behavior never depends on what a Sink does with them.
type Sink interface {
	Log(m Inspector, msg string)
	LogError(m Inspector, msg string)
}

// LogSink writes diagnostics to a structured logger.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a Sink backed by logger. A nil logger discards everything.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &LogSink{logger: logger}
}

// Log implements Sink.
func (s *LogSink) Log(m Inspector, msg string) {
	s.logger.Info(msg, "machine", m.Name(), "stack", stackAttr(m.Stack()))
}

// LogError implements Sink.
func (s *LogSink) LogError(m Inspector, msg string) {
	s.logger.Error(msg, "machine", m.Name(), "stack", stackAttr(m.Stack()))
}

func stackAttr(ids []domain.StateID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
