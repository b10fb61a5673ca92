package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appAccount "github.com/feedify/backend/internal/application/account"
	"github.com/feedify/backend/internal/interfaces/http/response"
)

// AuthHandler 注册与登录处理器
type AuthHandler struct {
	accounts *appAccount.Service
}

// NewAuthHandler 创建注册与登录处理器
func NewAuthHandler(accounts *appAccount.Service) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// SignUp 注册并发送验证码
// @Summary 注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body appAccount.SignUpDTO true "注册信息"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /auth/sign-up [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var dto appAccount.SignUpDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		bindError(c, err)
		return
	}

	if err := h.accounts.SignUp(c.Request.Context(), &dto); err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, "User registered successfully. Please verify your email", nil)
}

// CheckUsername 检查用户名是否可用
// @Summary 检查用户名
// @Tags 认证
// @Produce json
// @Param username query string true "用户名"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /auth/check-username [get]
func (h *AuthHandler) CheckUsername(c *gin.Context) {
	unique, err := h.accounts.CheckUsername(c.Query("username"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !unique {
		response.Error(c, http.StatusConflict, response.CodeConflict, "Username is already taken")
		return
	}

	response.SuccessWithMessage(c, "Username is unique", nil)
}

// Verify 校验注册验证码
// @Summary 校验验证码
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body appAccount.VerifyDTO true "验证码"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /auth/verify [post]
func (h *AuthHandler) Verify(c *gin.Context) {
	var dto appAccount.VerifyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		bindError(c, err)
		return
	}

	if err := h.accounts.Verify(&dto); err != nil {
		writeError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Account verified successfully", nil)
}

// SignIn 登录
// @Summary 登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body appAccount.SignInDTO true "登录信息"
// @Success 200 {object} response.Response{data=appAccount.TokenDTO}
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /auth/sign-in [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var dto appAccount.SignInDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		bindError(c, err)
		return
	}

	token, err := h.accounts.SignIn(&dto)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, token)
}
