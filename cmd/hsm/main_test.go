package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hsm"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		for _, c := range rootCmd.Commands() {
			resetFlags(c.Flags())
		}
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags puts every flag back to its default, since the commands are package globals.
func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "hsm version "+hsm.Version+"\n", out)
}

func TestDescribe(t *testing.T) {
	out, err := execute(t, "describe", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "| `chase` |")
	assert.Contains(t, out, "# Scenario `night-watch`")
	assert.Contains(t, out, "**sight** intruder")
}

func TestRun_ScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: short
ticks: 4
step: 100ms
events:
  - tick: 2
    kind: sight
    target: cat
`), 0o644))

	out, err := execute(t, "run", path, "--no-color", "--name", "tester", "--mermaid")
	require.NoError(t, err)
	assert.Contains(t, out, "alive > patrol")
	assert.Contains(t, out, "alive > chase")
	assert.Contains(t, out, "short: 4 ticks, 1 pursuits, 0 triggered events, final stack alive > chase")
	assert.Contains(t, out, "d0_alive --> d1_chase")
	assert.Contains(t, out, "class s_patrol visited;")
}

func TestRun_FlagsOverrideScenario(t *testing.T) {
	out, err := execute(t, "run", "--ticks", "3", "--dt", "10ms", "--quiet", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "night-watch: 3 ticks")
	assert.NotContains(t, out, "    0  ")
}

func TestRun_InvalidVerbosity(t *testing.T) {
	_, err := execute(t, "run", "--ticks", "1", "--verbosity", "loud", "--quiet")
	assert.Error(t, err)
}

func TestWatchScenario_RerunsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ticks: 1\n"), 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	runs := 0
	err := watchScenario(ctx, path, func(context.Context) error {
		runs++
		switch runs {
		case 1:
			go func() {
				time.Sleep(100 * time.Millisecond)
				_ = os.WriteFile(path, []byte("ticks: 2\n"), 0o644)
			}()
		case 2:
			cancel()
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, runs)
}

func TestRun_WatchNeedsFile(t *testing.T) {
	_, err := execute(t, "run", "--watch", "--ticks", "1")
	assert.ErrorContains(t, err, "--watch needs a scenario file")
}
