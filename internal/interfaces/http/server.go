package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/feedify/backend/internal/infrastructure/auth"
	"github.com/feedify/backend/internal/infrastructure/config"
	"github.com/feedify/backend/internal/infrastructure/log"
	"github.com/feedify/backend/internal/interfaces/http/handler"
	"github.com/feedify/backend/internal/interfaces/http/middleware"
	"github.com/feedify/backend/internal/interfaces/http/validator"
	"github.com/feedify/backend/internal/interfaces/mcp"

	_ "github.com/feedify/backend/docs" // Swagger docs
)

// Handlers 路由用到的所有处理器
type Handlers struct {
	Auth           *handler.AuthHandler
	Account        *handler.AccountHandler
	Space          *handler.SpaceHandler
	Message        *handler.MessageHandler
	PublicFeedback *handler.PublicFeedbackHandler
	Summary        *handler.SummaryHandler
	Notification   *handler.NotificationHandler
}

// NewHandlers 组合处理器
func NewHandlers(
	authHandler *handler.AuthHandler,
	accountHandler *handler.AccountHandler,
	spaceHandler *handler.SpaceHandler,
	messageHandler *handler.MessageHandler,
	publicFeedbackHandler *handler.PublicFeedbackHandler,
	summaryHandler *handler.SummaryHandler,
	notificationHandler *handler.NotificationHandler,
) *Handlers {
	return &Handlers{
		Auth:           authHandler,
		Account:        accountHandler,
		Space:          spaceHandler,
		Message:        messageHandler,
		PublicFeedback: publicFeedbackHandler,
		Summary:        summaryHandler,
		Notification:   notificationHandler,
	}
}

// HTTPServer HTTP 服务器
type HTTPServer struct {
	router          *gin.Engine
	httpPort        string
	shutdownTimeout time.Duration
	server          *http.Server
	logger          *slog.Logger

	shutdownOnce sync.Once
	shutdownChan chan struct{}
}

// NewServer 创建 HTTP 服务器
func NewServer(
	h *Handlers,
	tokens *auth.TokenIssuer,
	limiter *middleware.RateLimiter,
	mcpServer *mcp.MCPServer,
	cfg *config.ServerConfig,
) (*HTTPServer, error) {
	if err := validator.Register(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(middleware.Recovery(), middleware.RequestLogger())

	logger := log.NewModuleLogger("http", "server")
	authed := middleware.BearerAuth(tokens)
	limited := limiter.Middleware()

	// 注册路由
	api := router.Group("/api/v1", middleware.EnsureUTF8Body())
	{
		// 认证相关路由
		api.POST("/auth/sign-up", limited, h.Auth.SignUp)
		api.GET("/auth/check-username", h.Auth.CheckUsername)
		api.POST("/auth/verify", h.Auth.Verify)
		api.POST("/auth/sign-in", h.Auth.SignIn)

		// 公开页面路由
		public := api.Group("/public")
		{
			public.GET("/:username/:space/heading", h.Space.Heading)
			public.GET("/:username/:space/feedback", h.PublicFeedback.List)
			public.POST("/:username/:space/messages", limited, h.Message.Send)
			public.GET("/suggest", limited, h.Message.Suggest)
		}

		// 需要登录的路由
		secured := api.Group("", authed)
		{
			secured.GET("/me", h.Account.Me)
			secured.GET("/accept-messages", h.Account.GetAcceptMessages)
			secured.POST("/accept-messages", h.Account.SetAcceptMessages)

			secured.GET("/spaces", h.Space.List)
			secured.POST("/spaces", h.Space.Create)
			secured.GET("/spaces/:space/messages", h.Message.List)
			secured.GET("/spaces/:space/export", h.Message.Export)
			secured.POST("/spaces/:space/summary/stream", h.Summary.StreamSpace)
			secured.DELETE("/messages/:id", h.Message.Delete)

			secured.POST("/public-feedback", h.PublicFeedback.Add)
			secured.GET("/notifications", h.Notification.List)

			secured.POST("/summaries", h.Summary.Summarize)
			secured.POST("/summaries/stream", h.Summary.Stream)
		}
	}

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 通知推送
	router.GET("/ws", authed, h.Notification.WebSocket)

	// MCP SSE 端点
	if mcpServer != nil {
		router.Any("/mcp/sse", authed, gin.WrapH(mcpServer.GetHandler()))
	}

	s := &HTTPServer{
		router:          router,
		httpPort:        cfg.HTTPPort,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
		shutdownChan:    make(chan struct{}),
	}
	if s.httpPort == "" {
		s.httpPort = ":8080"
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = 5 * time.Second
	}
	return s, nil
}

// Handler 返回路由（测试使用）
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

// Start 启动服务器，阻塞直到服务器关闭
func (s *HTTPServer) Start() error {
	s.server = &http.Server{
		Addr:              s.httpPort,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("HTTP server starting",
		"port", s.httpPort,
	)

	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	// 监听失败时通知 main 退出
	s.signalShutdown()
	return err
}

// GetShutdownChan 服务器异常退出时关闭的通道
func (s *HTTPServer) GetShutdownChan() <-chan struct{} {
	return s.shutdownChan
}

func (s *HTTPServer) signalShutdown() {
	s.shutdownOnce.Do(func() { close(s.shutdownChan) })
}

// Shutdown 优雅关闭
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Stop 停止服务器
func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}
