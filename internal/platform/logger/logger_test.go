package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/moments-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{" warn ", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tc := range tests {
		level, ok := ParseLevel(tc.in)
		assert.Equal(t, tc.want, level, tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
	}
}

func TestSetupWriter(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	var buf bytes.Buffer
	l := SetupWriter(config.ServerConfig{LogLevel: "warn"}, &buf)
	require.NotNil(t, l)

	l.Info("hidden")
	l.Warn("shown", "component", "test")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"component":"test"`)
	assert.Same(t, l, slog.Default())
}

func TestSetupWriterInvalidLevel(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	var buf bytes.Buffer
	SetupWriter(config.ServerConfig{LogLevel: "loud"}, &buf)
	assert.Contains(t, buf.String(), "invalid log level configured")
	assert.Contains(t, buf.String(), `"configured_level":"loud"`)
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	l, buf := NewTestLogger(t)
	fallback := Discard()

	assert.Nil(t, FromContext(context.Background()))
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, slog.Default(), FromContextOrDefault(context.Background(), nil))

	ctx := WithLogger(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
	assert.Same(t, l, FromContextOrDefault(ctx, fallback))

	FromContextOrDefault(ctx, nil).Info("from context")
	assert.True(t, buf.HasMessage("from context"))

	assert.Panics(t, func() { WithLogger(context.Background(), nil) })
}
