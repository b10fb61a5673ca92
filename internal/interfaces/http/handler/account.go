package handler

import (
	"github.com/gin-gonic/gin"

	appAccount "github.com/feedify/backend/internal/application/account"
	"github.com/feedify/backend/internal/interfaces/http/middleware"
	"github.com/feedify/backend/internal/interfaces/http/response"
)

// AccountHandler 当前用户处理器
type AccountHandler struct {
	accounts *appAccount.Service
}

// NewAccountHandler 创建当前用户处理器
func NewAccountHandler(accounts *appAccount.Service) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Me 当前用户信息
// @Summary 当前用户
// @Tags 账户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=appAccount.UserDTO}
// @Failure 401 {object} response.ErrorResponse
// @Router /me [get]
func (h *AccountHandler) Me(c *gin.Context) {
	user, err := h.accounts.Me(middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, user)
}

// GetAcceptMessages 查询是否接收匿名消息
// @Summary 查询消息接收开关
// @Tags 账户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Router /accept-messages [get]
func (h *AccountHandler) GetAcceptMessages(c *gin.Context) {
	accepting, err := h.accounts.GetAcceptMessages(middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"isAcceptingMessages": accepting})
}

// SetAcceptMessages 更新是否接收匿名消息
// @Summary 更新消息接收开关
// @Tags 账户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body appAccount.AcceptMessagesDTO true "开关"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /accept-messages [post]
func (h *AccountHandler) SetAcceptMessages(c *gin.Context) {
	var dto appAccount.AcceptMessagesDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		bindError(c, err)
		return
	}

	if err := h.accounts.SetAcceptMessages(middleware.UserID(c), *dto.AcceptMessages); err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Message acceptance status updated successfully", gin.H{"isAcceptingMessages": *dto.AcceptMessages})
}
