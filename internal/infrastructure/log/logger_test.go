package log

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo}, // 默认值
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("LOG_FORMAT", "")
		t.Setenv("FEEDIFY_ENV", "")

		cfg := NewConfigFromEnv()

		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "console", cfg.Format)
		assert.Equal(t, "stdout", cfg.Output)
	})

	t.Run("custom config", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "warn")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("FEEDIFY_ENV", "")

		cfg := NewConfigFromEnv()

		assert.Equal(t, "warn", cfg.Level)
		assert.Equal(t, "json", cfg.Format)
	})

	t.Run("development mode", func(t *testing.T) {
		t.Setenv("FEEDIFY_ENV", "development")
		t.Setenv("LOG_LEVEL", "error") // 应该被覆盖

		cfg := NewConfigFromEnv()

		assert.Equal(t, "debug", cfg.Level)
		assert.True(t, cfg.AddSource)
	})
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue bool
		expected     bool
	}{
		{"true value", "true", false, true},
		{"false value", "false", true, false},
		{"invalid value", "invalid", true, true},
		{"missing env", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("FEEDIFY_TEST_BOOL", tt.envValue)
			assert.Equal(t, tt.expected, getEnvBool("FEEDIFY_TEST_BOOL", tt.defaultValue))
		})
	}
}

func TestInit_FileOutputAndLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedify.log")
	Init(&Config{Level: "info", Format: "json", Output: "file:" + path})
	defer Init(&Config{Level: "info", Format: "console", Output: "stdout"})

	logger := NewModuleLogger("test", "component")
	logger.Debug("hidden message")
	logger.Info("visible message")

	SetLevel("debug")
	assert.True(t, IsDebugMode())
	logger.Debug("debug after reload")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.NotContains(t, content, "hidden message")
	assert.Contains(t, content, "visible message")
	assert.Contains(t, content, "debug after reload")
	assert.Contains(t, content, `"module":"test"`)
	assert.Contains(t, content, `"service":"feedify-backend"`)
}

func TestOpenOutput_Unknown(t *testing.T) {
	_, err := openOutput("syslog")
	assert.Error(t, err)
}

func TestLogCtxFromContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithUserID(ctx, "user-1")
	ctx = WithSpace(ctx, "team-retro")

	attrs := LogCtxFromContext(ctx)
	require.Len(t, attrs, 3)
	assert.Equal(t, "user-1", UserIDFromContext(ctx))
	assert.Equal(t, "", UserIDFromContext(context.Background()))

	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))
	FromContext(ctx, base).Info("test message")

	out := buf.String()
	assert.True(t, strings.Contains(out, "request_id=req-1"))
	assert.True(t, strings.Contains(out, "space_name=team-retro"))
}
