package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestLNeverNil(t *testing.T) {
	assert.NotNil(t, L())
	assert.NotNil(t, With("k", "v"))
}

func TestInitReconfigures(t *testing.T) {
	Init(&Config{Level: "debug", Format: "json", Component: "test"})
	assert.True(t, L().Enabled(nil, slog.LevelDebug))

	Init(&Config{Level: "error", Format: "text"})
	assert.False(t, L().Enabled(nil, slog.LevelInfo))
	assert.True(t, L().Enabled(nil, slog.LevelError))
}
