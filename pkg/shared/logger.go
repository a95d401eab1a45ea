package shared

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type LoggerConfig struct {
	Level   string
	Output  io.Writer
	Pretty  bool
	Service string
}

// NewLogger builds a leveled zerolog logger. Output defaults to stderr.
func NewLogger(config LoggerConfig) (zerolog.Logger, error) {
	level, err := ParseLogLevel(config.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	output := config.Output
	if output == nil {
		output = os.Stderr
	}
	if config.Pretty {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	context := zerolog.New(output).Level(level).With().Timestamp()
	if service := strings.TrimSpace(config.Service); service != "" {
		context = context.Str("service", service)
	}
	return context.Logger(), nil
}

// ParseLogLevel parses the provided input value. An empty level is info.
func ParseLogLevel(raw string) (zerolog.Level, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(normalized)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unsupported log level %q", raw)
	}
	return level, nil
}
