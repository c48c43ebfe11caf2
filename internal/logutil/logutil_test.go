package logutil

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger_TraceLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelTrace)

	logger.Log(context.Background(), LevelTrace, "visiting node", "op", "+")
	assert.Contains(t, buf.String(), "level=TRACE")
	assert.Contains(t, buf.String(), "op=+")
	assert.Contains(t, buf.String(), "source=logutil_test.go:")
}

func TestNewLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	logger.Log(context.Background(), LevelTrace, "hidden")
	logger.Debug("hidden too")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.NotContains(t, buf.String(), "source=", "source is only added at debug and below")
}

func TestTraceEnabled(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(NewLogger(&buf, slog.LevelInfo))
	assert.False(t, TraceEnabled())
	Trace("dropped")
	assert.Empty(t, buf.String())

	slog.SetDefault(NewLogger(&buf, LevelTrace))
	assert.True(t, TraceEnabled())
	Trace("kept", "nodes", 3)
	assert.Contains(t, buf.String(), "nodes=3")
}
