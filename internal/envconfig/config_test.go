package envconfig

import (
	"log/slog"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ouroboros-ml/ouroboros/internal/logutil"
)

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"false": slog.LevelInfo,
		"0":     slog.LevelInfo,
		"1":     slog.LevelDebug,
		"true":  slog.LevelDebug,
		"2":     logutil.LevelTrace,
		"'1'":   slog.LevelDebug,
	}

	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("OUROBOROS_DEBUG", k)
			assert.Equal(t, v, LogLevel())
		})
	}
}

func TestEpsilonAndTolerance(t *testing.T) {
	cases := []struct {
		value string
		want  float64
	}{
		{"", 1e-6},
		{"1e-5", 1e-5},
		{" 0.001 ", 0.001},
		{"abc", 1e-6},
		{"-1", 1e-6},
		{"0", 1e-6},
	}

	for _, tt := range cases {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("OUROBOROS_EPSILON", tt.value)
			assert.InDelta(t, tt.want, Epsilon(), 1e-15)
		})
	}

	t.Setenv("OUROBOROS_TOLERANCE", "")
	assert.InDelta(t, 1e-4, Tolerance(), 1e-15)
}

func TestParallel(t *testing.T) {
	t.Setenv("OUROBOROS_PARALLEL", "")
	assert.Equal(t, uint(runtime.GOMAXPROCS(0)), Parallel())

	t.Setenv("OUROBOROS_PARALLEL", "3")
	assert.Equal(t, uint(3), Parallel())

	t.Setenv("OUROBOROS_PARALLEL", "0")
	assert.Equal(t, uint(runtime.GOMAXPROCS(0)), Parallel())
}

func TestAsMap(t *testing.T) {
	t.Setenv("OUROBOROS_DEBUG", "2")
	t.Setenv("OUROBOROS_EPSILON", "")
	vars := AsMap()
	assert.Len(t, vars, 4)
	assert.Equal(t, "TRACE", vars["OUROBOROS_DEBUG"].Value)

	vals := Values()
	assert.Equal(t, "TRACE", vals["OUROBOROS_DEBUG"])
	assert.Equal(t, "1e-06", vals["OUROBOROS_EPSILON"])
}
