// Package logging configures the process-wide zerolog logger: a
// zerolog.ConsoleWriter over os.Stdout plus a profile/env-override layer
// for switching between runtime and test output. The core package never
// imports this package directly — it only ever sees a sink.Sink;
// cmd/aetherctl and test helpers are what wire a zerolog-backed sink into
// it.
package logging

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

const (
	EnvLogLevel     = "AETHERCFG_LOG_LEVEL"
	EnvLogTimestamp = "AETHERCFG_LOG_TIMESTAMP"
	EnvLogNoColor   = "AETHERCFG_LOG_NO_COLOR"
)

// Profile selects the default level/timestamp posture Configure applies
// before env overrides are layered on top.
type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

type config struct {
	level     zerolog.Level
	timestamp bool
	noColor   bool
}

var (
	configureOnce sync.Once
	// Logger is the process-wide logger; Configure must run before any
	// package reads it, which ConfigureRuntime/ConfigureTests guarantee.
	Logger zerolog.Logger
)

// ConfigureRuntime configures the logger for normal process execution:
// info level, timestamps on.
func ConfigureRuntime() {
	Configure(ProfileRuntime)
}

// ConfigureTests configures the logger for `go test` runs: debug level,
// no timestamps (keeps table-driven failure output diffable).
func ConfigureTests() {
	Configure(ProfileTest)
}

// Configure builds the process-wide Logger from profile, then applies any
// AETHERCFG_LOG_* environment overrides. Only the first call in a process
// has effect; later calls are no-ops, guarded by sync.Once.
func Configure(profile Profile) {
	configureOnce.Do(func() {
		cfg := defaultConfig(profile)
		applyEnvOverrides(&cfg)
		Logger = newLogger(cfg)
	})
}

func defaultConfig(profile Profile) config {
	switch profile {
	case ProfileTest:
		return config{level: zerolog.DebugLevel, timestamp: false}
	default:
		return config{level: zerolog.InfoLevel, timestamp: true}
	}
}

func newLogger(cfg config) zerolog.Logger {
	var out = os.Stdout
	isTerminal := isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())

	writer := zerolog.ConsoleWriter{
		Out:        colorable.NewColorable(out),
		TimeFormat: time.RFC3339,
		NoColor:    cfg.noColor || !isTerminal,
	}

	ctx := zerolog.New(writer).Level(cfg.level).With()
	if cfg.timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Str("app", "aethercfg").Logger()
}

func applyEnvOverrides(cfg *config) {
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogTimestamp)); ok {
		cfg.timestamp = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.noColor = v
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// SetLevel re-levels the process-wide Logger after Configure has run, for
// callers that learn their level from a config file loaded later than the
// logger itself (cmd/aetherctl's log_level setting). An unrecognized or
// empty level string changes nothing. The AETHERCFG_LOG_LEVEL environment
// variable still wins: SetLevel is a no-op while it is set.
func SetLevel(raw string) {
	if os.Getenv(EnvLogLevel) != "" {
		return
	}
	if lvl, ok := parseLevel(raw); ok {
		Logger = Logger.Level(lvl)
	}
}

// Sink adapts the process-wide Logger to the core's sink.Sink capability,
// emitting every line at warn level (error codes and failure status lines
// are always actionable, never routine info noise).
type Sink struct{}

func (Sink) Emit(line string) {
	Logger.Warn().Msg(line)
}
