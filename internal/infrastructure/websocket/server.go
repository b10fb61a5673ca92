package websocket

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"

	"github.com/feedify/backend/internal/infrastructure/config"
	"github.com/feedify/backend/internal/infrastructure/log"
)

const (
	// PingInterval 服务端 Ping 间隔
	PingInterval = 30 * time.Second
	// PongTimeout 超过该时间未收到任何消息则断开
	PongTimeout = 60 * time.Second
	// writeTimeout 单次写入超时
	writeTimeout = 10 * time.Second
	// maxReadSize 客户端只会发送控制消息
	maxReadSize = 4 * 1024
)

// Server 把 HTTP 请求升级为 WebSocket 并接入 Hub
type Server struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewServer 创建 WebSocket 服务端
func NewServer(hub *Hub, wsCfg *config.WebSocketConfig, serverCfg *config.ServerConfig) *Server {
	var origins []string
	if serverCfg != nil {
		origins = serverCfg.AllowedOrigins
	}
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(origins),
	}
	if wsCfg != nil {
		if wsCfg.ReadBufferSize > 0 {
			upgrader.ReadBufferSize = wsCfg.ReadBufferSize
		}
		if wsCfg.WriteBufferSize > 0 {
			upgrader.WriteBufferSize = wsCfg.WriteBufferSize
		}
	}
	return &Server{
		hub:      hub,
		upgrader: upgrader,
		logger:   log.NewModuleLogger("websocket", "server"),
	}
}

// originChecker 未配置来源时放行所有请求；没有 Origin 头的非浏览器客户端始终放行
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		if len(allowed) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin)
	}
}

// ServeConn 处理已认证用户的 WebSocket 连接，阻塞直到连接关闭
func (s *Server) ServeConn(w http.ResponseWriter, r *http.Request, userID string) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Failed to upgrade connection",
			"user_id", userID,
			"error", err,
		)
		return
	}

	conn := NewConnection(userID)
	if err := s.hub.Register(conn); err != nil {
		_ = ws.Close()
		return
	}
	s.logger.Debug("Notification client connected", "user_id", userID)

	go s.writePump(ws, conn)
	s.readPump(ws, conn)
}

// readPump 读取并丢弃客户端消息，用于处理 Pong 和关闭帧
func (s *Server) readPump(ws *websocket.Conn, conn *Connection) {
	defer func() {
		s.hub.Unregister(conn)
		_ = ws.Close()
		s.logger.Debug("Notification client disconnected", "user_id", conn.UserID)
	}()

	ws.SetReadLimit(maxReadSize)
	_ = ws.SetReadDeadline(time.Now().Add(PongTimeout))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(PongTimeout))
	})

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.logger.Warn("Connection read error",
					"user_id", conn.UserID,
					"error", err,
				)
			}
			return
		}
		// 收到任何消息都续期读取超时
		_ = ws.SetReadDeadline(time.Now().Add(PongTimeout))
	}
}

// writePump 写入推送消息并定时发送 Ping
func (s *Server) writePump(ws *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(PingInterval)
	defer func() {
		ticker.Stop()
		_ = ws.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				// Hub 已关闭该连接
				_ = ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := ws.WriteMessage(websocket.TextMessage, message); err != nil {
				s.logger.Warn("Failed to write message",
					"user_id", conn.UserID,
					"error", err,
				)
				return
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
