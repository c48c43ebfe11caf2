// Package envconfig reads configuration from OUROBOROS_* environment variables.
//
//   - LogLevel: log verbosity (OUROBOROS_DEBUG)
//   - Epsilon: finite-difference step for gradient checks (OUROBOROS_EPSILON)
//   - Tolerance: accepted gradient-check error (OUROBOROS_TOLERANCE)
//   - Parallel: concurrent gradient checks in the CLI (OUROBOROS_PARALLEL)
package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/ouroboros-ml/ouroboros/internal/logutil"
)

// LogLevel returns the log level.
// OUROBOROS_DEBUG=1 (or true) selects debug, 2 selects trace; any other
// integer n selects slog.Level(-4n).
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("OUROBOROS_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

var (
	// Epsilon is the central-difference step used by gradient checks.
	Epsilon = Float("OUROBOROS_EPSILON", 1e-6)
	// Tolerance is the maximum absolute error a gradient check accepts.
	Tolerance = Float("OUROBOROS_TOLERANCE", 1e-4)
	// Parallel bounds how many gradient checks run at once.
	Parallel = Uint("OUROBOROS_PARALLEL", uint(runtime.GOMAXPROCS(0)))
)

// Float returns a function that reads a positive float64 with a default.
func Float(key string, defaultValue float64) func() float64 {
	return func() float64 {
		if s := Var(key); s != "" {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil || f <= 0 {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
				return defaultValue
			}
			return f
		}
		return defaultValue
	}
}

// Uint returns a function that reads a positive uint with a default.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			n, err := strconv.ParseUint(s, 10, 64)
			if err != nil || n == 0 {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
				return defaultValue
			}
			return uint(n)
		}
		return defaultValue
	}
}

// EnvVar describes one configuration variable.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every configuration variable with its current value.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"OUROBOROS_DEBUG":     {"OUROBOROS_DEBUG", levelName(LogLevel()), "Show additional debug information (1 = debug, 2 = trace)"},
		"OUROBOROS_EPSILON":   {"OUROBOROS_EPSILON", Epsilon(), "Finite-difference step for gradient checks (default 1e-6)"},
		"OUROBOROS_TOLERANCE": {"OUROBOROS_TOLERANCE", Tolerance(), "Maximum absolute error accepted by gradient checks (default 1e-4)"},
		"OUROBOROS_PARALLEL":  {"OUROBOROS_PARALLEL", Parallel(), "Maximum number of gradient checks run concurrently"},
	}
}

// Values returns every configuration value rendered as a string.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// Var returns an environment variable stripped of surrounding quotes and spaces.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

func levelName(level slog.Level) string {
	if level == logutil.LevelTrace {
		return "TRACE"
	}
	return level.String()
}
