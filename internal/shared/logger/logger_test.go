package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackr-io/trackr/internal/shared/config"
)

func TestSourceHandler(t *testing.T) {
	tests := []struct {
		name     string
		minLevel slog.Level
		log      func(l *slog.Logger)
		want     bool
	}{
		{"info below warn threshold", slog.LevelWarn, func(l *slog.Logger) { l.Info("m") }, false},
		{"warn at threshold", slog.LevelWarn, func(l *slog.Logger) { l.Warn("m") }, true},
		{"error above threshold", slog.LevelWarn, func(l *slog.Logger) { l.Error("m") }, true},
		{"info in debug mode", slog.LevelDebug, func(l *slog.Logger) { l.Info("m") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := slog.New(NewSourceHandler(slog.NewTextHandler(&buf, nil), tt.minLevel))
			tt.log(l)
			assert.Equal(t, tt.want, strings.Contains(buf.String(), "source="), buf.String())
		})
	}
}

func TestSourceHandlerKeepsAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewSourceHandler(slog.NewTextHandler(&buf, nil), slog.LevelWarn)).
		With("ticket_id", 7).WithGroup("req")
	l.Warn("slow", "path", "/api/tickets")

	out := buf.String()
	assert.Contains(t, out, "ticket_id=7")
	assert.Contains(t, out, "req.path=/api/tickets")
	assert.Contains(t, out, "logger_test.go")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestInitJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trackr.log")
	require.NoError(t, Init(&config.LoggerConfig{Level: "info", Format: "json", OutputPath: path}, false))

	NewLogger().Named("test").Infow("ticket created", "ticket_id", 42)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ticket_id":42`)
	assert.Contains(t, string(data), `"component":"test"`)
}
