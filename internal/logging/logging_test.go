package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New("debug", FormatJSON, &buf)
	logger.Debug().Str("component", "store").Msg("row added")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected a JSON line, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "debug" || entry["component"] != "store" || entry["message"] != "row added" {
		t.Errorf("Unexpected entry %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Error("Expected a timestamp field")
	}
}

func TestNewLevelFallback(t *testing.T) {
	var buf bytes.Buffer
	logger := New("loud", FormatJSON, &buf)
	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("Expected info level fallback, got %q", out)
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", FormatConsole, &buf)
	logger.Warn().Msg("column exists")

	if !strings.Contains(buf.String(), "column exists") || strings.HasPrefix(buf.String(), "{") {
		t.Errorf("Expected console output, got %q", buf.String())
	}
}
