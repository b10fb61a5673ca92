package middleware

import (
	"bytes"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// maxRepairBodySize 超过该大小的请求体不做编码修复
const maxRepairBodySize = 1 << 20

// EnsureUTF8Body 确保请求体是 UTF-8 编码的中间件
// 部分终端（例如 Windows 中文系统下的 curl）会以 GBK 发送反馈内容，
// 这里检测到非 UTF-8 时尝试按 GBK 转换，失败则保留原始数据交给后续校验
func EnsureUTF8Body() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.ContentLength == 0 || c.Request.ContentLength > maxRepairBodySize {
			c.Next()
			return
		}

		bodyBytes, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxRepairBodySize))
		c.Request.Body.Close()
		if err != nil {
			c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
			c.Next()
			return
		}

		if !utf8.Valid(bodyBytes) {
			if converted, err := convertGBKToUTF8(bodyBytes); err == nil && utf8.Valid(converted) {
				bodyBytes = converted
				c.Request.ContentLength = int64(len(converted))
			}
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		c.Next()
	}
}

// convertGBKToUTF8 将 GBK 编码的字节转换为 UTF-8
func convertGBKToUTF8(gbkBytes []byte) ([]byte, error) {
	reader := transform.NewReader(bytes.NewReader(gbkBytes), simplifiedchinese.GBK.NewDecoder())
	return io.ReadAll(reader)
}
