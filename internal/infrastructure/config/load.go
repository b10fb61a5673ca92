package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigFile 配置文件路径环境变量名
	EnvConfigFile = "FEEDIFY_CONFIG"
	// DefaultConfigFile 默认配置文件
	DefaultConfigFile = "feedify.yaml"
	// minSecretLength 签名密钥最小长度
	minSecretLength = 16
)

// Load 加载配置
// 顺序：默认值 -> YAML 配置文件 -> .env -> 环境变量
func Load() (*Config, error) {
	_ = godotenv.Load()

	path := os.Getenv(EnvConfigFile)
	if path == "" {
		path = DefaultConfigFile
	}
	return LoadFile(path)
}

// LoadFile 从指定文件加载配置，文件不存在时只使用默认值和环境变量
func LoadFile(path string) (*Config, error) {
	cfg := NewConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
			if abs, err := filepath.Abs(path); err == nil {
				cfg.File = abs
			} else {
				cfg.File = path
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = filepath.Join(GetDataDir(), "feedify.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验必填配置
func (c *Config) Validate() error {
	var errs []error

	if len(c.Auth.Secret) < minSecretLength {
		errs = append(errs, fmt.Errorf("auth secret must be at least %d characters (FEEDIFY_AUTH_SECRET)", minSecretLength))
	}
	if c.LLM.APIKey == "" {
		errs = append(errs, errors.New("llm api key is required (FEEDIFY_LLM_API_KEY)"))
	}
	if c.LLM.Model == "" {
		errs = append(errs, errors.New("llm model is required (FEEDIFY_LLM_MODEL)"))
	}
	if c.Server.HTTPPort == "" {
		errs = append(errs, errors.New("http port is required (FEEDIFY_HTTP_PORT)"))
	}
	if c.Summary.FragmentTimeout < 0 || c.Summary.MaxPromptTokens < 0 {
		errs = append(errs, errors.New("summary limits must not be negative"))
	}

	return errors.Join(errs...)
}
