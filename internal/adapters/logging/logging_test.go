package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/stagecraft/internal/ports"
)

func TestConsoleLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(
		WithOutput(&buf),
		WithTimestamp(false),
	)

	logger.Info(context.Background(), "plugin accepted item",
		ports.F("plugin", "Publish Files"),
		ports.F("item", "shot_010.ma"),
	)

	line := buf.String()
	assert.Contains(t, line, "[INFO] plugin accepted item")
	assert.Contains(t, line, "plugin=Publish Files")
	assert.Contains(t, line, "item=shot_010.ma")
}

func TestConsoleLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(
		WithOutput(&buf),
		WithJSONFormat(true),
		WithTimestamp(false),
	)

	logger.Warn(context.Background(), "settings missing", ports.F("key", "Publish Template"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "settings missing", entry["msg"])
	assert.Equal(t, "Publish Template", entry["key"])
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf), WithLevel(ports.LevelWarn))

	logger.Debug(context.Background(), "not shown")
	logger.Info(context.Background(), "not shown either")
	logger.Error(context.Background(), "shown")

	lines := strings.Count(buf.String(), "\n")
	assert.Equal(t, 1, lines)
	assert.Contains(t, buf.String(), "[ERROR] shown")
}

func TestConsoleLogger_With(t *testing.T) {
	var buf bytes.Buffer
	base := NewConsoleLogger(WithOutput(&buf), WithTimestamp(false))
	logger := base.With(ports.F("plugin", "Upload Review"))

	logger.Info(context.Background(), "finalize complete")

	assert.Contains(t, buf.String(), "plugin=Upload Review")

	// The base logger is unaffected.
	buf.Reset()
	base.Info(context.Background(), "bare")
	assert.NotContains(t, buf.String(), "plugin=")
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()

	// Must not panic and must satisfy the interface.
	logger.Debug(context.Background(), "x")
	logger.Info(context.Background(), "x", ports.F("k", 1))
	logger.SetLevel(ports.LevelError)
	assert.Equal(t, ports.LevelError, logger.Level())
	assert.Same(t, logger, logger.With(ports.F("k", 1)))
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level ports.Level
		want  string
	}{
		{ports.LevelDebug, "DEBUG"},
		{ports.LevelInfo, "INFO"},
		{ports.LevelWarn, "WARN"},
		{ports.LevelError, "ERROR"},
		{ports.Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.String())
	}
}
