package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/feedify/backend/internal/infrastructure/log"
	"github.com/feedify/backend/internal/interfaces/http/response"
)

// Recovery 捕获 panic 并返回 500
// http.ErrAbortHandler 会继续向上抛出，由 net/http 直接断开连接
func Recovery() gin.HandlerFunc {
	logger := log.NewModuleLogger("http", "recovery")

	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if err, ok := r.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(r)
			}

			log.FromContext(c.Request.Context(), logger).Error("Panic recovered",
				"panic", r,
				"path", c.Request.URL.Path,
				"stack", string(debug.Stack()),
			)
			if c.Writer.Written() {
				c.Abort()
				return
			}
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Internal server error")
		}()
		c.Next()
	}
}
