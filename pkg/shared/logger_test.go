package shared

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLoggerWritesStructuredEntries(t *testing.T) {
	var buffer bytes.Buffer
	logger, err := NewLogger(LoggerConfig{Level: "debug", Output: &buffer, Service: "nft-sdk"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Debug().Str("standard", "ext").Msg("resolved")

	var entry map[string]any
	if err := json.Unmarshal(buffer.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log entry, got %q: %v", buffer.String(), err)
	}
	if entry["service"] != "nft-sdk" || entry["standard"] != "ext" || entry["message"] != "resolved" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buffer bytes.Buffer
	logger, err := NewLogger(LoggerConfig{Level: "warn", Output: &buffer})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info().Msg("hidden")
	if buffer.Len() != 0 {
		t.Fatalf("expected info entry to be filtered, got %q", buffer.String())
	}
	logger.Warn().Msg("shown")
	if !strings.Contains(buffer.String(), "shown") {
		t.Fatalf("expected warn entry, got %q", buffer.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("")
	if err != nil || level != zerolog.InfoLevel {
		t.Fatalf("expected info for empty level, got %v %v", level, err)
	}
	level, err = ParseLogLevel(" TRACE ")
	if err != nil || level != zerolog.TraceLevel {
		t.Fatalf("expected trace, got %v %v", level, err)
	}
	if _, err := NewLogger(LoggerConfig{Level: "verbose"}); err == nil {
		t.Fatal("expected error for unsupported level")
	}
}
