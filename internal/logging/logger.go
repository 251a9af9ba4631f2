// Package logging builds the zerolog loggers used across pairing and forwards
// log lines to the log-record bridge.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pairing/internal/domain"
)

// Publisher accepts log records; *events.Bridge[domain.LogRecord] is one.
type Publisher interface {
	Publish(record domain.LogRecord)
}

// Config selects level and sinks.
type Config struct {
	App   string
	Level string

	// Out receives human-readable lines. Nil means stderr; io.Discard silences
	// the console.
	Out     io.Writer
	NoColor bool

	// Bridge, when set, also receives every line as a LogRecord.
	Bridge Publisher
}

// ParseLevel maps a config string onto a zerolog level.
func ParseLevel(raw string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, nil
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "disabled", "off", "none":
		return zerolog.Disabled, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", raw)
	}
}

// New returns a logger writing to the console and, if configured, the log
// bridge.
func New(cfg Config) (zerolog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: cfg.NoColor}}
	if cfg.Bridge != nil {
		writers = append(writers, NewBridgeWriter(cfg.Bridge))
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp()
	if cfg.App != "" {
		ctx = ctx.Str("app", cfg.App)
	}
	return ctx.Logger(), nil
}
