package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{" error ", slog.LevelError, true},
		{"loud", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	l := New(&buf, "warn", "json")
	l.Info("hidden")
	l.Warn("Skipped rows", "table", "home_form", "rows", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "Skipped rows", rec["msg"])
	assert.Equal(t, "home_form", rec["table"])
	assert.Equal(t, "WARN", rec["level"])
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`, rec["time"])
}

func TestNew_Fallbacks(t *testing.T) {
	var buf bytes.Buffer

	l := New(&buf, "loud", "xml")
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "Invalid log level")
	assert.Contains(t, out, "configuredLevel=loud")
	assert.Contains(t, out, "Invalid log format")
	assert.NotContains(t, out, "hidden")
}

func TestInit_SetsDefault(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer

	l := Init(&buf, "info", "text")
	slog.Info("Loaded fixtures", "fixtures", 3)

	assert.Same(t, l, slog.Default())
	assert.Contains(t, buf.String(), "fixtures=3")
}
