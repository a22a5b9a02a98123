package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FormatSelection(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		New("info", "json", &buf).Info("hello")
		assert.Contains(t, buf.String(), `"msg":"hello"`)
	})

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		New("info", "text", &buf).Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
		assert.NotContains(t, buf.String(), `"msg"`)
	})

	t.Run("level filtering", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		New("warn", "json", &buf).Info("dropped")
		assert.Empty(t, buf.String())
	})

	t.Run("unknown level defaults to info", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := New("shouting", "json", &buf)
		logger.Debug("dropped")
		logger.Info("kept")
		assert.NotContains(t, buf.String(), "dropped")
		assert.Contains(t, buf.String(), "kept")
	})
}

func TestNew_RedactsSessionCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		attr   slog.Attr
		secret string
	}{
		{"token field name", slog.String("token", "tok-abc123"), "tok-abc123"},
		{"session header name", slog.String("x-session-token", "tok-abc123"), "tok-abc123"},
		{"session prefix", slog.String("session_token_v2", "tok-abc123"), "tok-abc123"},
		{"bearer value in plain field", slog.String("header", "Bearer tok-abc123"), "tok-abc123"},
		{"inline session token in url", slog.String("url", "https://x.test/cb?session_token=tok-abc123"), "tok-abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			New("info", "json", &buf).Info("request", tt.attr)

			out := buf.String()
			require.NotEmpty(t, out)
			assert.NotContains(t, out, tt.secret, "credential leaked into log output")
		})
	}
}

func TestNew_KeepsOrdinaryAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New("info", "json", &buf).Info("request",
		slog.String("operation", "ListProjects"),
		slog.String("resource", "projects"),
	)

	out := buf.String()
	assert.Contains(t, out, "ListProjects")
	assert.Contains(t, out, "projects")
}

func TestLoggerContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New("info", "json", &buf)

	ctx := WithLogger(context.Background(), logger)
	require.Same(t, logger, FromContext(ctx))

	// Without a stored logger the default is returned, never nil.
	require.NotNil(t, FromContext(context.Background()))
}
