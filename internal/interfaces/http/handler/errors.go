package handler

import (
	"errors"
	"net/http"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	appFeedback "github.com/feedify/backend/internal/application/feedback"
	"github.com/feedify/backend/internal/domain/account"
	"github.com/feedify/backend/internal/domain/feedback"
	"github.com/feedify/backend/internal/domain/space"
	domainSummary "github.com/feedify/backend/internal/domain/summary"
	"github.com/feedify/backend/internal/interfaces/http/response"
)

// errorMapping 领域错误到 HTTP 状态和业务码的映射
type errorMapping struct {
	err     error
	status  int
	code    int
	message string // 为空时使用错误文本
}

var errorMappings = []errorMapping{
	// 输入错误
	{account.ErrInvalidUsername, http.StatusBadRequest, response.CodeInvalidParams, ""},
	{account.ErrInvalidEmail, http.StatusBadRequest, response.CodeInvalidParams, ""},
	{account.ErrWeakPassword, http.StatusBadRequest, response.CodeInvalidParams, ""},
	{account.ErrCodeExpired, http.StatusBadRequest, response.CodeInvalidParams, ""},
	{account.ErrCodeIncorrect, http.StatusBadRequest, response.CodeInvalidParams, ""},
	{account.ErrAlreadyVerified, http.StatusBadRequest, response.CodeInvalidParams, ""},
	{space.ErrInvalidName, http.StatusBadRequest, response.CodeInvalidParams, ""},
	{space.ErrInvalidTitle, http.StatusBadRequest, response.CodeInvalidParams, ""},
	{feedback.ErrEmptyContent, http.StatusBadRequest, response.CodeInvalidParams, ""},
	{feedback.ErrContentTooLong, http.StatusBadRequest, response.CodeInvalidParams, ""},
	{appFeedback.ErrUnsupportedFormat, http.StatusBadRequest, response.CodeInvalidParams, ""},
	{domainSummary.ErrEmptyBatch, http.StatusBadRequest, response.CodeInvalidParams, "Please provide valid messages to summarize"},
	{domainSummary.ErrBatchTooLarge, http.StatusBadRequest, response.CodeInvalidParams, ""},

	// 认证与权限
	{domainSummary.ErrUnauthenticated, http.StatusUnauthorized, response.CodeUnauthorized, "Not authenticated"},
	{account.ErrInvalidCredentials, http.StatusUnauthorized, response.CodeUnauthorized, ""},
	{account.ErrNotVerified, http.StatusForbidden, response.CodeForbidden, ""},
	{feedback.ErrNotAcceptingMessages, http.StatusForbidden, response.CodeForbidden, ""},

	// 资源不存在
	{account.ErrUserNotFound, http.StatusNotFound, response.CodeNotFound, ""},
	{space.ErrSpaceNotFound, http.StatusNotFound, response.CodeNotFound, ""},
	{feedback.ErrMessageNotFound, http.StatusNotFound, response.CodeNotFound, ""},
	{feedback.ErrNoMessagesToExport, http.StatusNotFound, response.CodeNotFound, ""},

	// 冲突
	{account.ErrUsernameTaken, http.StatusConflict, response.CodeConflict, ""},
	{account.ErrEmailTaken, http.StatusConflict, response.CodeConflict, ""},
	{space.ErrSpaceExists, http.StatusConflict, response.CodeConflict, ""},
}

// writeError 按错误类型写出错误响应
func writeError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			message := m.message
			if message == "" {
				message = sentence(m.err.Error())
			}
			response.Error(c, m.status, m.code, message)
			return
		}
	}

	if domainSummary.IsBackendError(err) {
		response.ErrorWithDetail(c, http.StatusInternalServerError, response.CodeBackend, "Summarization failed", err.Error())
		return
	}

	_ = c.Error(err)
	response.ErrorWithDetail(c, http.StatusInternalServerError, response.CodeInternal, "Internal server error", err.Error())
}

// bindError 请求参数绑定失败
func bindError(c *gin.Context, err error) {
	response.ErrorWithDetail(c, http.StatusBadRequest, response.CodeInvalidParams, "Invalid request parameters", err.Error())
}

// sentence 首字母大写
func sentence(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
