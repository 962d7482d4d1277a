// Package logging builds the hclog loggers used by genie-scx.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/genie/go/genie/internal/config"
)

const linePrefix = "🧞 "

// NewLogger creates a new hclog logger with standard settings
func NewLogger(name string, level string, jsonFormat bool, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	// Add prefix for non-JSON output
	if !jsonFormat {
		output = NewPrefixWriter(linePrefix, output)
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      ParseLevel(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return hclog.New(opts)
}

// FromConfig creates a logger from the environment configuration.
func FromConfig(name string, cfg config.Config, output io.Writer) hclog.Logger {
	return NewLogger(name, cfg.LogLevel, cfg.JSONLog, output)
}

// ParseLevel maps a level name to an hclog level. Unknown and empty names
// fall back to warn.
func ParseLevel(level string) hclog.Level {
	l := hclog.LevelFromString(strings.TrimSpace(level))
	if l == hclog.NoLevel {
		return hclog.Warn
	}
	return l
}
