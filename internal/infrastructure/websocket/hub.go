// Package websocket 管理通知推送的 WebSocket 连接
package websocket

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/feedify/backend/internal/infrastructure/log"
)

// ErrHubStopped Hub 已停止
var ErrHubStopped = errors.New("websocket hub stopped")

// sendBufferSize 每个连接的发送缓冲
const sendBufferSize = 64

// Hub WebSocket 连接管理中心
type Hub struct {
	// 按用户分组的连接，只在 Run 协程中写入
	users map[string]map[*Connection]bool
	// 注册连接
	register chan *Connection
	// 注销连接
	unregister chan *Connection
	// 广播消息
	broadcast chan *Message
	done      chan struct{}
	stopOnce  sync.Once
	mu        sync.RWMutex
	logger    *slog.Logger
}

// Connection 一个已认证用户的连接
type Connection struct {
	UserID string
	Send   chan []byte
}

// NewConnection 创建连接
func NewConnection(userID string) *Connection {
	return &Connection{
		UserID: userID,
		Send:   make(chan []byte, sendBufferSize),
	}
}

// Message 消息
type Message struct {
	UserID string
	Data   []byte
}

// NewHub 创建 Hub
func NewHub() *Hub {
	return &Hub{
		users:      make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *Message),
		done:       make(chan struct{}),
		logger:     log.NewModuleLogger("websocket", "hub"),
	}
}

// Run 运行 Hub（需要在 goroutine 中运行），Stop 后返回
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.closeAll()
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.users[conn.UserID] == nil {
				h.users[conn.UserID] = make(map[*Connection]bool)
			}
			h.users[conn.UserID][conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			h.remove(conn)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.users[msg.UserID] {
				select {
				case conn.Send <- msg.Data:
				default:
					// 消费过慢的连接直接断开
					h.logger.Warn("Dropping slow connection", "user_id", conn.UserID)
					h.remove(conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove 删除连接并关闭其发送通道，调用方持有写锁
func (h *Hub) remove(conn *Connection) {
	conns, ok := h.users[conn.UserID]
	if !ok {
		return
	}
	if _, ok := conns[conn]; !ok {
		return
	}
	delete(conns, conn)
	close(conn.Send)
	if len(conns) == 0 {
		delete(h.users, conn.UserID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, conns := range h.users {
		for conn := range conns {
			close(conn.Send)
		}
	}
	h.users = make(map[string]map[*Connection]bool)
}

// Start 启动 Hub（启动后台 goroutine）
func (h *Hub) Start() {
	go h.Run()
}

// Stop 停止 Hub 并关闭所有连接的发送通道
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
}

func (h *Hub) stopped() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Register 注册连接
func (h *Hub) Register(conn *Connection) error {
	if h.stopped() {
		return ErrHubStopped
	}
	select {
	case h.register <- conn:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// Unregister 注销连接
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// SendToUser 以 JSON 形式发送给用户的所有连接
func (h *Hub) SendToUser(userID string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if h.stopped() {
		return ErrHubStopped
	}
	select {
	case h.broadcast <- &Message{UserID: userID, Data: jsonData}:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// ConnectionCount 用户当前在线连接数
func (h *Hub) ConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID])
}
