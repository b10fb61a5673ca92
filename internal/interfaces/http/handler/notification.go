package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/feedify/backend/internal/application/notification"
	"github.com/feedify/backend/internal/infrastructure/websocket"
	"github.com/feedify/backend/internal/interfaces/http/middleware"
	"github.com/feedify/backend/internal/interfaces/http/response"
)

// NotificationHandler 通知处理器
type NotificationHandler struct {
	service  *notification.Service
	wsServer *websocket.Server
}

// NewNotificationHandler 创建通知处理器
func NewNotificationHandler(service *notification.Service, wsServer *websocket.Server) *NotificationHandler {
	return &NotificationHandler{service: service, wsServer: wsServer}
}

// List 最近的通知
// @Summary 最近通知
// @Tags 通知
// @Produce json
// @Security BearerAuth
// @Param limit query int false "条数，默认 20"
// @Success 200 {object} response.Response{data=[]notification.NotificationDTO}
// @Failure 401 {object} response.ErrorResponse
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	items, err := h.service.ListRecent(middleware.UserID(c), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, items)
}

// WebSocket 升级为通知推送连接
func (h *NotificationHandler) WebSocket(c *gin.Context) {
	h.wsServer.ServeConn(c.Writer, c.Request, middleware.UserID(c))
}
