package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("natal_api", &Config{Encoding: "json", Level: "warn"}, &buf)

	log.Info("hidden")
	log.Warn("shown", "body", "Sun")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "natal_api", entry["app"])
	assert.Equal(t, "Sun", entry["body"])
}

func TestNewConsoleDefaults(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("natal_api", nil, &buf)

	log.Debug("hidden")
	log.Info("started", "port", 8000)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=started")
	assert.Contains(t, out, "app=natal_api")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Panics(t, func() { parseLevel("loud") })
}

func TestUnsupportedEncoding(t *testing.T) {
	assert.Panics(t, func() {
		NewWithWriter("natal_api", &Config{Encoding: "xml", Level: "info"}, &bytes.Buffer{})
	})
}
