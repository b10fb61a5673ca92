package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv 设置通过校验所需的最小环境变量
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FEEDIFY_AUTH_SECRET", "0123456789abcdef0123")
	t.Setenv("FEEDIFY_LLM_API_KEY", "test-key")
	t.Setenv(EnvDataDir, t.TempDir())
	ResetDataDir()
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, ":8080", cfg.Server.HTTPPort)
	assert.Equal(t, "gemini-1.5-pro", cfg.LLM.Model)
	assert.Equal(t, 30*time.Second, cfg.Summary.FragmentTimeout)
	assert.Equal(t, time.Hour, cfg.Auth.VerifyCodeTTL)
	assert.Equal(t, "@every 1h", cfg.Scheduler.PurgeSpec)
}

func TestLoadFile_MissingFileUsesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.File)
	assert.Equal(t, ":8080", cfg.Server.HTTPPort)
	assert.Equal(t, filepath.Join(GetDataDir(), "feedify.db"), cfg.Database.Path)
}

func TestLoadFile_YAMLThenEnv(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "feedify.yaml")
	content := `
server:
  http_port: ":9090"
llm:
  model: "gemini-1.5-flash"
summary:
  fragment_timeout: 5s
  max_prompt_tokens: 2000
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("FEEDIFY_LLM_MODEL", "gemini-2.0-flash")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.HTTPPort)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model, "环境变量优先于配置文件")
	assert.Equal(t, 5*time.Second, cfg.Summary.FragmentTimeout)
	assert.Equal(t, 2000, cfg.Summary.MaxPromptTokens)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NotEmpty(t, cfg.File)
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := NewConfig()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FEEDIFY_AUTH_SECRET")
	assert.Contains(t, err.Error(), "FEEDIFY_LLM_API_KEY")

	cfg.Auth.Secret = "0123456789abcdef"
	cfg.LLM.APIKey = "key"
	assert.NoError(t, cfg.Validate())

	cfg.Summary.MaxPromptTokens = -1
	assert.Error(t, cfg.Validate())
}

func TestSubConfigProviders(t *testing.T) {
	cfg := NewConfig()
	assert.Same(t, &cfg.Summary, NewSummaryConfig(cfg))
	assert.Same(t, &cfg.Auth, NewAuthConfig(cfg))
	assert.Same(t, &cfg.LLM, NewLLMConfig(cfg))
}
