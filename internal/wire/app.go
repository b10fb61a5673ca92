package wire

import (
	"context"
	"errors"
	"log/slog"

	appNotification "github.com/feedify/backend/internal/application/notification"
	"github.com/feedify/backend/internal/domain/events"
	"github.com/feedify/backend/internal/infrastructure/config"
	applog "github.com/feedify/backend/internal/infrastructure/log"
	"github.com/feedify/backend/internal/infrastructure/scheduler"
	"github.com/feedify/backend/internal/infrastructure/watcher"
	"github.com/feedify/backend/internal/infrastructure/websocket"
	"github.com/feedify/backend/internal/interfaces"
)

// App 应用主结构，组合所有服务
type App struct {
	HTTPServer    *interfaces.HTTPServer
	MCPServer     *interfaces.MCPServer
	cfg           *config.Config
	wsHub         *websocket.Hub
	scheduler     *scheduler.Scheduler
	notifications *appNotification.Service
	logger        *slog.Logger

	// 事件与配置监听
	eventBus    events.EventBus
	fileWatcher *watcher.FileWatcher
	unsubscribe []func()
}

// NewApp 创建应用实例
func NewApp(
	cfg *config.Config,
	httpServer *interfaces.HTTPServer,
	mcpServer *interfaces.MCPServer,
	wsHub *websocket.Hub,
	eventBus events.EventBus,
	fileWatcher *watcher.FileWatcher,
	sched *scheduler.Scheduler,
	notifications *appNotification.Service,
) *App {
	return &App{
		HTTPServer:    httpServer,
		MCPServer:     mcpServer,
		cfg:           cfg,
		wsHub:         wsHub,
		scheduler:     sched,
		notifications: notifications,
		logger:        applog.NewModuleLogger("app", "main"),
		eventBus:      eventBus,
		fileWatcher:   fileWatcher,
	}
}

// Start 启动所有服务
func (a *App) Start() error {
	a.logger.Info("Starting Feedify backend application")

	// 注册事件订阅者并启动文件监听
	a.setupEventSubscribers()
	if a.fileWatcher != nil {
		if err := a.fileWatcher.Start(); err != nil {
			a.logger.Error("Failed to start file watcher",
				"error", err,
			)
		} else {
			a.logger.Info("File watcher started successfully")
		}
	}

	// 启动 WebSocket Hub
	a.wsHub.Start()

	// 启动定时任务
	if a.scheduler != nil {
		if err := a.scheduler.Start(); err != nil {
			return err
		}
	}

	// 启动 HTTP 服务器（goroutine）
	go func() {
		if err := a.HTTPServer.Start(); err != nil {
			a.logger.Error("Failed to start HTTP server",
				"error", err,
			)
		}
	}()

	a.logger.Info("Feedify backend application started successfully")

	// MCP 服务器通过 HTTP Handler 提供服务，已在 HTTP 服务器中注册 /mcp/sse 端点
	return nil
}

// setupEventSubscribers 注册事件订阅者
func (a *App) setupEventSubscribers() {
	if a.eventBus == nil {
		return
	}

	// 通知服务订阅反馈消息事件
	if a.notifications != nil {
		a.unsubscribe = append(a.unsubscribe, a.notifications.Subscribe(a.eventBus))
		a.logger.Info("Notification service subscribed to message events")
	}

	// 配置文件变更时热更新日志级别
	a.unsubscribe = append(a.unsubscribe, a.eventBus.Subscribe(
		events.ConfigFileChanged,
		events.HandlerFunc(a.handleConfigChanged),
	))
}

// handleConfigChanged 重新加载配置文件
// 只有日志级别支持热更新，其余配置需要重启
func (a *App) handleConfigChanged(ctx context.Context, event events.Event) error {
	cfgEvent, ok := event.(*events.ConfigFileEvent)
	if !ok {
		return nil
	}

	cfg, err := config.LoadFile(cfgEvent.Path)
	if err != nil {
		a.logger.Warn("Ignoring invalid config file change",
			"path", cfgEvent.Path,
			"error", err,
		)
		return err
	}

	if cfg.Log.Level != a.cfg.Log.Level {
		applog.SetLevel(cfg.Log.Level)
		a.logger.Info("Log level updated",
			"from", a.cfg.Log.Level,
			"to", cfg.Log.Level,
		)
		a.cfg.Log.Level = cfg.Log.Level
	}
	return nil
}

// GetShutdownChan 获取关闭信号通道（HTTP 服务器异常退出时关闭）
func (a *App) GetShutdownChan() <-chan struct{} {
	return a.HTTPServer.GetShutdownChan()
}

// Stop 停止所有服务
// 数据库连接由注入器返回的 cleanup 关闭
func (a *App) Stop() error {
	a.logger.Info("Stopping Feedify backend application")

	var errs []error

	// 先停止接收请求
	if err := a.HTTPServer.Stop(); err != nil {
		a.logger.Error("Failed to stop HTTP server",
			"error", err,
		)
		errs = append(errs, err)
	}
	if err := a.MCPServer.Stop(); err != nil {
		a.logger.Error("Failed to stop MCP server",
			"error", err,
		)
		errs = append(errs, err)
	}

	// 停止定时任务
	if a.scheduler != nil {
		a.scheduler.Stop()
		a.logger.Info("Scheduler stopped")
	}

	// 停止文件监听器
	if a.fileWatcher != nil {
		a.fileWatcher.Stop()
		a.logger.Info("File watcher stopped")
	}

	// 取消订阅并关闭事件总线（等待处理中的通知完成）
	for _, unsubscribe := range a.unsubscribe {
		unsubscribe()
	}
	if a.eventBus != nil {
		a.eventBus.Close()
		a.logger.Info("Event bus closed")
	}

	// 关闭所有 WebSocket 连接
	a.wsHub.Stop()

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	a.logger.Info("Feedify backend application stopped successfully")
	return nil
}
