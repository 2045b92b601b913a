package logging

import (
	"bytes"
	"encoding/json"
	"log"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	out := log.Writer()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		log.SetOutput(out)
		Logger = nil
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInit_JSON(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	_, err := Init("warn", "json", &buf)
	require.NoError(t, err)

	slog.Info("dropped")
	slog.Warn("board saved", "project", "project-a")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "board saved", line["msg"])
	assert.Equal(t, "project-a", line["project"])
}

func TestInit_Text(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	logger, err := Init("debug", "text", &buf)
	require.NoError(t, err)
	assert.Same(t, logger, Logger)

	slog.Debug("cache miss", "project", "p1")
	assert.Contains(t, buf.String(), "msg=\"cache miss\" project=p1")
}

func TestInit_Errors(t *testing.T) {
	_, err := Init("loud", "text", &bytes.Buffer{})
	assert.Error(t, err)

	_, err = Init("info", "xml", &bytes.Buffer{})
	assert.Error(t, err)
}
