package mcp

import (
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	appFeedback "github.com/feedify/backend/internal/application/feedback"
	appSpace "github.com/feedify/backend/internal/application/space"
	appSummary "github.com/feedify/backend/internal/application/summary"
	"github.com/feedify/backend/internal/infrastructure/log"
)

const (
	serverName    = "feedify"
	serverVersion = "0.1.0"
)

// MCPServer MCP 服务器
// 每个 SSE 会话创建一个绑定到已认证用户的 mcp.Server，工具只能访问该用户的数据
type MCPServer struct {
	handler  http.Handler
	spaces   *appSpace.Service
	feedback *appFeedback.Service
	relay    *appSummary.Relay
	logger   *slog.Logger
}

// NewServer 创建 MCP 服务器
func NewServer(
	spaces *appSpace.Service,
	feedback *appFeedback.Service,
	relay *appSummary.Relay,
) *MCPServer {
	s := &MCPServer{
		spaces:   spaces,
		feedback: feedback,
		relay:    relay,
		logger:   log.NewModuleLogger("mcp", "server"),
	}

	// 创建 SSE Handler，用户 ID 由认证中间件写入请求上下文
	s.handler = mcp.NewSSEHandler(
		func(r *http.Request) *mcp.Server {
			userID := log.UserIDFromContext(r.Context())
			if userID == "" {
				return nil
			}
			s.logger.Debug("MCP session opened", "user_id", userID)
			return s.serverFor(userID)
		},
		nil,
	)
	return s
}

// serverFor 创建绑定到用户的 MCP 服务器实例
func (s *MCPServer) serverFor(userID string) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    serverName,
			Version: serverVersion,
		},
		nil,
	)
	s.registerTools(server, userID)
	return server
}

// GetHandler 获取 HTTP Handler（用于集成到 HTTP 服务器）
func (s *MCPServer) GetHandler() http.Handler {
	return s.handler
}

// Stop 停止服务器
// SSE 会话随 HTTP 服务器关闭
func (s *MCPServer) Stop() error {
	return nil
}
