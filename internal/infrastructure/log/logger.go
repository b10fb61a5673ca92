package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// 全局 logger 实例
var (
	defaultLogger *slog.Logger
	level         = new(slog.LevelVar)
	mu            sync.Mutex
)

// Init 初始化日志系统
func Init(cfg *Config) {
	if cfg == nil {
		cfg = NewConfigFromEnv()
	}

	mu.Lock()
	defer mu.Unlock()

	level.Set(parseLevel(cfg.Level))

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	out, err := openOutput(cfg.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log: %v, falling back to stdout\n", err)
		out = os.Stdout
	}

	// 根据格式选择处理器
	var logHandler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		logHandler = slog.NewJSONHandler(out, opts)
	} else {
		logHandler = slog.NewTextHandler(out, opts)
	}

	// 添加服务标识
	defaultLogger = slog.New(logHandler.WithAttrs([]slog.Attr{
		slog.String("service", "feedify-backend"),
	}))

	slog.SetDefault(defaultLogger)
}

// openOutput 解析输出目标
func openOutput(output string) (io.Writer, error) {
	switch {
	case output == "" || output == "stdout":
		return os.Stdout, nil
	case output == "stderr":
		return os.Stderr, nil
	case strings.HasPrefix(output, "file:"):
		path := strings.TrimPrefix(output, "file:")
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", path, err)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unknown log output %q", output)
	}
}

// GetLogger 获取默认 logger
func GetLogger() *slog.Logger {
	mu.Lock()
	initialized := defaultLogger != nil
	mu.Unlock()

	if !initialized {
		// 未初始化，使用默认配置
		Init(nil)
	}
	return defaultLogger
}

// NewModuleLogger 为特定模块创建 logger
func NewModuleLogger(module, component string) *slog.Logger {
	return GetLogger().With(
		slog.String("module", module),
		slog.String("component", component),
	)
}

// SetLevel 运行时调整日志级别（配置热更新）
func SetLevel(levelName string) {
	level.Set(parseLevel(levelName))
}

// Level 当前日志级别
func Level() slog.Level {
	return level.Level()
}

// IsDebugMode 检查是否为调试模式
func IsDebugMode() bool {
	return level.Level() <= slog.LevelDebug
}

// parseLevel 解析日志级别
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
