package config

import (
	"time"

	applog "github.com/feedify/backend/internal/infrastructure/log"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	Log       applog.Config   `yaml:"log"`
	LLM       LLMConfig       `yaml:"llm"`
	Summary   SummaryConfig   `yaml:"summary"`
	Auth      AuthConfig      `yaml:"auth"`
	Mail      MailConfig      `yaml:"mail"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Scheduler SchedulerConfig `yaml:"scheduler"`

	// File 实际加载的配置文件路径，未加载时为空
	File string `yaml:"-"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTPPort        string        `yaml:"http_port" env:"FEEDIFY_HTTP_PORT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"FEEDIFY_SHUTDOWN_TIMEOUT"`
	// AllowedOrigins WebSocket 允许的来源，空表示不校验
	AllowedOrigins []string `yaml:"allowed_origins" env:"FEEDIFY_ALLOWED_ORIGINS" envSeparator:","`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Path 为空时使用数据目录下的 feedify.db
	Path string `yaml:"path" env:"FEEDIFY_DB_PATH"`
}

// WebSocketConfig WebSocket 配置
type WebSocketConfig struct {
	ReadBufferSize  int `yaml:"read_buffer_size"`
	WriteBufferSize int `yaml:"write_buffer_size"`
}

// LLMConfig 生成模型配置（OpenAI 兼容接口）
type LLMConfig struct {
	BaseURL    string        `yaml:"base_url" env:"FEEDIFY_LLM_BASE_URL"`
	APIKey     string        `yaml:"api_key" env:"FEEDIFY_LLM_API_KEY"`
	Model      string        `yaml:"model" env:"FEEDIFY_LLM_MODEL"`
	Timeout    time.Duration `yaml:"timeout" env:"FEEDIFY_LLM_TIMEOUT"`
	MaxRetries int           `yaml:"max_retries" env:"FEEDIFY_LLM_MAX_RETRIES"`
}

// SummaryConfig 摘要流配置
type SummaryConfig struct {
	// FragmentTimeout 等待下一个片段的最长时间，0 表示不限制
	FragmentTimeout time.Duration `yaml:"fragment_timeout" env:"FEEDIFY_SUMMARY_FRAGMENT_TIMEOUT"`
	// MaxPromptTokens 提示词 token 上限，0 表示不限制
	MaxPromptTokens int `yaml:"max_prompt_tokens" env:"FEEDIFY_SUMMARY_MAX_PROMPT_TOKENS"`
}

// AuthConfig 认证配置
type AuthConfig struct {
	Secret        string        `yaml:"secret" env:"FEEDIFY_AUTH_SECRET"`
	TokenTTL      time.Duration `yaml:"token_ttl" env:"FEEDIFY_AUTH_TOKEN_TTL"`
	VerifyCodeTTL time.Duration `yaml:"verify_code_ttl" env:"FEEDIFY_VERIFY_CODE_TTL"`
}

// MailConfig 邮件配置（Resend API）
type MailConfig struct {
	BaseURL string `yaml:"base_url" env:"FEEDIFY_MAIL_BASE_URL"`
	// APIKey 为空时只记录验证码日志，不发送邮件
	APIKey  string        `yaml:"api_key" env:"FEEDIFY_MAIL_API_KEY"`
	Domain  string        `yaml:"domain" env:"FEEDIFY_EMAIL_DOMAIN"`
	Timeout time.Duration `yaml:"timeout" env:"FEEDIFY_MAIL_TIMEOUT"`
}

// RateLimitConfig 公开接口限流配置
type RateLimitConfig struct {
	// RequestsPerMinute 每个客户端 IP 每分钟请求数，0 表示关闭限流
	RequestsPerMinute int `yaml:"requests_per_minute" env:"FEEDIFY_RATE_LIMIT_RPM"`
	Burst             int `yaml:"burst" env:"FEEDIFY_RATE_LIMIT_BURST"`
}

// SchedulerConfig 定时任务配置
type SchedulerConfig struct {
	// PurgeSpec 清理过期未验证用户的 cron 表达式
	PurgeSpec string `yaml:"purge_spec" env:"FEEDIFY_PURGE_SPEC"`
}

// NewConfig 创建配置（默认值）
func NewConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		WebSocket: WebSocketConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		Log: applog.Config{
			Level:  "info",
			Format: "console",
			Output: "stdout",
		},
		LLM: LLMConfig{
			BaseURL:    "https://generativelanguage.googleapis.com/v1beta/openai/",
			Model:      "gemini-1.5-pro",
			Timeout:    60 * time.Second,
			MaxRetries: 2,
		},
		Summary: SummaryConfig{
			FragmentTimeout: 30 * time.Second,
			MaxPromptTokens: 100000,
		},
		Auth: AuthConfig{
			TokenTTL:      24 * time.Hour,
			VerifyCodeTTL: time.Hour,
		},
		Mail: MailConfig{
			BaseURL: "https://api.resend.com",
			Domain:  "resend.dev",
			Timeout: 10 * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 30,
			Burst:             10,
		},
		Scheduler: SchedulerConfig{
			PurgeSpec: "@every 1h",
		},
	}
}

// NewDatabaseConfig 创建数据库配置
func NewDatabaseConfig(cfg *Config) *DatabaseConfig {
	return &cfg.Database
}

// NewServerConfig 创建服务器配置
func NewServerConfig(cfg *Config) *ServerConfig {
	return &cfg.Server
}

// NewWebSocketConfig 创建 WebSocket 配置
func NewWebSocketConfig(cfg *Config) *WebSocketConfig {
	return &cfg.WebSocket
}

// NewLLMConfig 创建生成模型配置
func NewLLMConfig(cfg *Config) *LLMConfig {
	return &cfg.LLM
}

// NewSummaryConfig 创建摘要配置
func NewSummaryConfig(cfg *Config) *SummaryConfig {
	return &cfg.Summary
}

// NewAuthConfig 创建认证配置
func NewAuthConfig(cfg *Config) *AuthConfig {
	return &cfg.Auth
}

// NewMailConfig 创建邮件配置
func NewMailConfig(cfg *Config) *MailConfig {
	return &cfg.Mail
}

// NewRateLimitConfig 创建限流配置
func NewRateLimitConfig(cfg *Config) *RateLimitConfig {
	return &cfg.RateLimit
}

// NewSchedulerConfig 创建定时任务配置
func NewSchedulerConfig(cfg *Config) *SchedulerConfig {
	return &cfg.Scheduler
}
