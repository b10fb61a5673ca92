// @title Feedify API
// @version 1.0
// @description Feedify 匿名反馈与摘要流服务
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/feedify/backend/internal/infrastructure/config"
	applog "github.com/feedify/backend/internal/infrastructure/log"
	"github.com/feedify/backend/internal/wire"
)

func main() {
	// 加载配置（.env -> 配置文件 -> 环境变量）
	cfg, err := config.Load()
	if err != nil {
		applog.Init(nil)
		applog.GetLogger().Error("Failed to load config",
			"error", err,
		)
		os.Exit(1)
	}

	// 初始化日志系统
	applog.Init(&cfg.Log)
	logger := applog.GetLogger()
	if cfg.File != "" {
		logger.Info("Config loaded", "path", cfg.File)
	}

	// Wire 自动生成的初始化函数
	app, cleanup, err := wire.InitializeAll(cfg)
	if err != nil {
		logger.Error("Failed to initialize application",
			"error", err,
		)
		os.Exit(1)
	}
	defer cleanup()

	// 启动所有服务
	if err := app.Start(); err != nil {
		logger.Error("Failed to start application",
			"error", err,
		)
		cleanup()
		os.Exit(1)
	}

	// 优雅关闭：收到信号或 HTTP 服务器异常退出
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigChan:
		logger.Info("Received signal", "signal", sig.String())
	case <-app.GetShutdownChan():
		logger.Warn("HTTP server exited unexpectedly")
	}

	logger.Info("Shutting down application...")
	if err := app.Stop(); err != nil {
		logger.Error("Error during application shutdown",
			"error", err,
		)
	}
	logger.Info("Application stopped")
}
