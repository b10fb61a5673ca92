package handler

import (
	"github.com/gin-gonic/gin"

	appFeedback "github.com/feedify/backend/internal/application/feedback"
	"github.com/feedify/backend/internal/interfaces/http/middleware"
	"github.com/feedify/backend/internal/interfaces/http/response"
)

// PublicFeedbackHandler 公开反馈墙处理器
type PublicFeedbackHandler struct {
	feedback *appFeedback.Service
}

// NewPublicFeedbackHandler 创建公开反馈墙处理器
func NewPublicFeedbackHandler(feedback *appFeedback.Service) *PublicFeedbackHandler {
	return &PublicFeedbackHandler{feedback: feedback}
}

// Add 把反馈添加到公开墙
// @Summary 添加公开反馈
// @Tags 公开反馈
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body appFeedback.AddPublicFeedbackDTO true "反馈"
// @Success 201 {object} response.Response{data=appFeedback.PublicFeedbackDTO}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /public-feedback [post]
func (h *PublicFeedbackHandler) Add(c *gin.Context) {
	var dto appFeedback.AddPublicFeedbackDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		bindError(c, err)
		return
	}

	pf, err := h.feedback.AddPublic(middleware.UserID(c), &dto)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, "Feedback added to public wall", pf)
}

// List 公开墙上的反馈
// @Summary 公开反馈列表
// @Tags 公开
// @Produce json
// @Param username path string true "用户名"
// @Param space path string true "空间名"
// @Success 200 {object} response.Response{data=[]appFeedback.PublicFeedbackDTO}
// @Failure 404 {object} response.ErrorResponse
// @Router /public/{username}/{space}/feedback [get]
func (h *PublicFeedbackHandler) List(c *gin.Context) {
	items, err := h.feedback.GetPublic(c.Param("username"), c.Param("space"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, items)
}
