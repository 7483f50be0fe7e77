package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels_WriteExpectedOutput(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()

	tests := []struct {
		level string
		msg   string
		attr  string
	}{
		{"DEBUG", "dbg", "a=1"},
		{"INFO", "inf", "b=2"},
		{"WARN", "wrn", "c=3"},
		{"ERROR", "err", "d=4"},
	}

	for _, tt := range tests {
		assert.True(t, strings.Contains(out, "level="+tt.level), "missing level %s", tt.level)
		assert.True(t, strings.Contains(out, "msg="+tt.msg), "missing msg %s", tt.msg)
		assert.True(t, strings.Contains(out, tt.attr), "missing attr %s", tt.attr)
	}
}

func TestSlogLogger_With_AttachesPersistentAttrs(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	child := log.With("panel", "vehicles")
	child.Info(ctx, "loaded")

	out := buf.String()
	require.True(t, strings.Contains(out, "panel=vehicles"))
	require.True(t, strings.Contains(out, "msg=loaded"))
}
