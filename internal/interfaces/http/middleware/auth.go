package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/feedify/backend/internal/infrastructure/auth"
	"github.com/feedify/backend/internal/infrastructure/log"
	"github.com/feedify/backend/internal/interfaces/http/response"
)

// userIDKey gin 上下文中的用户 ID
const userIDKey = "feedify.user_id"

// TokenParser 校验访问令牌
type TokenParser interface {
	Parse(token string) (*auth.Token, error)
}

// BearerAuth 校验 Authorization: Bearer 令牌
// WebSocket 握手无法自定义请求头，也接受 token 查询参数
func BearerAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.Request)
		if raw == "" {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Not authenticated")
			return
		}

		token, err := parser.Parse(raw)
		if err != nil {
			response.ErrorWithDetail(c, http.StatusUnauthorized, response.CodeUnauthorized, "Not authenticated", err.Error())
			return
		}

		c.Set(userIDKey, token.UserID)
		c.Request = c.Request.WithContext(log.WithUserID(c.Request.Context(), token.UserID))
		c.Next()
	}
}

// bearerToken 从请求头或查询参数中取出令牌
func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return r.URL.Query().Get("token")
}

// UserID 已认证用户 ID，未经过 BearerAuth 时为空
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// SetUserID 设置已认证用户（测试与内部路由使用）
func SetUserID(c *gin.Context, userID string) {
	c.Set(userIDKey, userID)
	c.Request = c.Request.WithContext(log.WithUserID(c.Request.Context(), userID))
}
