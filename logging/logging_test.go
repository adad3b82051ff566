package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" warn ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tc := range tests {
		if got := ParseLevel(tc.input); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New("warn", &buf).With("request_id", "abcd1234")

	logger.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("Info() at warn level wrote %q, want nothing", buf.String())
	}

	logger.Warn().Int("disposals", 2).Msg("computed")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line %q is not JSON: %v", buf.String(), err)
	}
	for key, want := range map[string]any{"level": "warn", "message": "computed", "request_id": "abcd1234", "disposals": 2.0} {
		if got := entry[key]; got != want {
			t.Errorf("log entry[%q] = %v, want %v", key, got, want)
		}
	}
	if _, ok := entry["time"]; !ok {
		t.Errorf("log entry has no time field: %v", entry)
	}
}

func TestNewSilent(t *testing.T) {
	// must not panic nor write anywhere.
	NewSilent().Error().Msg("discarded")
}
