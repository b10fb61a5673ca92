package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	appFeedback "github.com/feedify/backend/internal/application/feedback"
	"github.com/feedify/backend/internal/domain/feedback"
	"github.com/feedify/backend/internal/interfaces/http/middleware"
	"github.com/feedify/backend/internal/interfaces/http/response"
)

// MessageHandler 反馈消息处理器
type MessageHandler struct {
	feedback *appFeedback.Service
}

// NewMessageHandler 创建反馈消息处理器
func NewMessageHandler(feedback *appFeedback.Service) *MessageHandler {
	return &MessageHandler{feedback: feedback}
}

// Send 匿名发送消息
// @Summary 发送匿名消息
// @Tags 公开
// @Accept json
// @Produce json
// @Param username path string true "用户名"
// @Param space path string true "空间名"
// @Param body body appFeedback.SendMessageDTO true "消息内容"
// @Success 201 {object} response.Response{data=appFeedback.MessageDTO}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 429 {object} response.ErrorResponse
// @Router /public/{username}/{space}/messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	var dto appFeedback.SendMessageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		writeError(c, feedback.ErrEmptyContent)
		return
	}

	msg, err := h.feedback.Send(c.Request.Context(), c.Param("username"), c.Param("space"), &dto)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, "Message sent successfully", msg)
}

// List 空间内的消息，最新在前
// @Summary 消息列表
// @Tags 消息
// @Produce json
// @Security BearerAuth
// @Param space path string true "空间名"
// @Success 200 {object} response.Response{data=[]appFeedback.MessageDTO}
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /spaces/{space}/messages [get]
func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.feedback.List(middleware.UserID(c), c.Param("space"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, messages)
}

// Delete 删除消息
// @Summary 删除消息
// @Tags 消息
// @Produce json
// @Security BearerAuth
// @Param id path string true "消息 ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /messages/{id} [delete]
func (h *MessageHandler) Delete(c *gin.Context) {
	if err := h.feedback.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Message deleted", nil)
}

// Export 导出空间内的消息
// @Summary 导出消息
// @Tags 消息
// @Produce json
// @Produce text/csv
// @Security BearerAuth
// @Param space path string true "空间名"
// @Param format query string false "json 或 csv，默认 json"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /spaces/{space}/export [get]
func (h *MessageHandler) Export(c *gin.Context) {
	export, err := h.feedback.Export(middleware.UserID(c), c.Param("space"), c.Query("format"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, export.ContentType, export.Body)
}

// Suggest 为消息生成建议回复
// @Summary 建议回复
// @Tags 公开
// @Produce json
// @Param message query string true "消息内容"
// @Success 200 {object} response.Response{data=appFeedback.SuggestionDTO}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /public/suggest [get]
func (h *MessageHandler) Suggest(c *gin.Context) {
	message := c.Query("message")
	if message == "" {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidParams, "Message is required")
		return
	}

	suggestion, err := h.feedback.SuggestReplies(c.Request.Context(), message)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, suggestion)
}
