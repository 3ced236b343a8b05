package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithFormat(t *testing.T) {
	t.Run("json rewrites error key", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewWithFormat(&buf, slog.LevelInfo, "json")
		require.NoError(t, err)

		logger.Info("boom", "error", "bad")
		assert.Contains(t, buf.String(), `"err":"bad"`)
		assert.NotContains(t, buf.String(), `"error"`)
	})

	t.Run("text filters below level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewWithFormat(&buf, slog.LevelWarn, "text")
		require.NoError(t, err)

		logger.Info("hidden")
		logger.Warn("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := NewWithFormat(&bytes.Buffer{}, slog.LevelInfo, "xml")
		assert.Error(t, err)
	})
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
