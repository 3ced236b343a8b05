package hsm_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/hsm"
	"github.com/aretw0/hsm/internal/testutils"
	"github.com/aretw0/hsm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	w := newWorld()
	w.rules["A"] = once(domain.Inner("B"))
	m := hsm.NewMachine(scriptedRegistry(t, "A", "B"), "A", w,
		hsm.WithName("guard-7"), hsm.WithLogger(logger), hsm.WithVerbosity(domain.VerbosityBasic))

	m.Tick(frame)

	out := buf.String()
	assert.Contains(t, out, "machine=guard-7")
	assert.Contains(t, out, "inner from")
	assert.NotContains(t, out, "push ", "pushes are diagnostic-level")
}

func TestVerbosityLevels(t *testing.T) {
	run := func(v domain.Verbosity) []testutils.Entry {
		w := newWorld()
		w.rules["A"] = once(domain.Inner("B"))
		sink := &testutils.Sink{}
		m := hsm.NewMachine(scriptedRegistry(t, "A", "B"), "A", w, hsm.WithSink(sink), hsm.WithVerbosity(v))
		m.Tick(frame)
		m.Stop()
		return sink.Entries()
	}

	assert.Empty(t, run(domain.VerbosityNone))

	basic := run(domain.VerbosityBasic)
	require.Len(t, basic, 3, "two transitions and the stop")
	assert.True(t, strings.HasPrefix(basic[2].Msg, "stopping"))

	diagnostic := run(domain.VerbosityDiagnostic)
	assert.Greater(t, len(diagnostic), len(basic))

	var pushes int
	for _, e := range diagnostic {
		if strings.HasPrefix(e.Msg, "push ") {
			pushes++
		}
	}
	assert.Equal(t, 2, pushes)
}

func TestMachine_SetVerbosity(t *testing.T) {
	m := hsm.NewMachine(scriptedRegistry(t, "A"), "A", newWorld())
	assert.Equal(t, domain.VerbosityNone, m.Verbosity())
	m.SetVerbosity(domain.VerbosityDiagnostic)
	assert.Equal(t, domain.VerbosityDiagnostic, m.Verbosity())
}
