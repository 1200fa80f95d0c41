package logx

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSONLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf)
	logger.Debug().Msg("hidden")
	logger.Info().Str("event", "dispatch.started").Msg("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected only the info line, got %q", buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["event"] != "dispatch.started" || entry["level"] != "info" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Fatalf("expected timestamp in entry: %v", entry)
	}
}

func TestNewDebugAndPretty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, Config{Debug: true, PrettyFormat: true})
	logger.Debug().Str("event", "tool.tip_generated").Msg("")

	out := buf.String()
	if !strings.Contains(out, "tool.tip_generated") {
		t.Fatalf("expected debug line, got %q", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("pretty output must not be JSON: %q", out)
	}
}
