package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	appFeedback "github.com/feedify/backend/internal/application/feedback"
	appSummary "github.com/feedify/backend/internal/application/summary"
	"github.com/feedify/backend/internal/infrastructure/log"
	"github.com/feedify/backend/internal/interfaces/http/middleware"
	"github.com/feedify/backend/internal/interfaces/http/response"
)

// SummaryHandler 反馈摘要处理器
type SummaryHandler struct {
	relay    *appSummary.Relay
	feedback *appFeedback.Service
	logger   *slog.Logger
}

// NewSummaryHandler 创建反馈摘要处理器
func NewSummaryHandler(relay *appSummary.Relay, feedback *appFeedback.Service) *SummaryHandler {
	return &SummaryHandler{
		relay:    relay,
		feedback: feedback,
		logger:   log.NewModuleLogger("http", "summary"),
	}
}

// Summarize 非流式摘要
// @Summary 生成摘要
// @Tags 摘要
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body appSummary.SummarizeDTO true "待摘要的消息"
// @Success 200 {object} response.Response{data=appSummary.SummaryDTO}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /summaries [post]
func (h *SummaryHandler) Summarize(c *gin.Context) {
	var dto appSummary.SummarizeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		bindError(c, err)
		return
	}

	text, err := h.relay.SummarizeText(c.Request.Context(), middleware.UserID(c), dto.Messages)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, &appSummary.SummaryDTO{Summary: text})
}

// Stream 流式摘要，响应体是片段的原样拼接
// @Summary 流式生成摘要
// @Tags 摘要
// @Accept json
// @Produce plain
// @Security BearerAuth
// @Param body body appSummary.SummarizeDTO true "待摘要的消息"
// @Success 200 {string} string "分块传输的摘要文本"
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /summaries/stream [post]
func (h *SummaryHandler) Stream(c *gin.Context) {
	var dto appSummary.SummarizeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		bindError(c, err)
		return
	}
	h.stream(c, dto.Messages)
}

// StreamSpace 流式摘要空间内已保存的消息
// @Summary 流式摘要空间消息
// @Tags 摘要
// @Produce plain
// @Security BearerAuth
// @Param space path string true "空间名"
// @Success 200 {string} string "分块传输的摘要文本"
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /spaces/{space}/summary/stream [post]
func (h *SummaryHandler) StreamSpace(c *gin.Context) {
	contents, err := h.feedback.Contents(middleware.UserID(c), c.Param("space"))
	if err != nil {
		writeError(c, err)
		return
	}
	h.stream(c, contents)
}

// stream 转发摘要片段
// 首个片段到达后才提交响应头，之前的失败仍以 JSON 错误返回；
// 提交之后的失败会中断连接，客户端看到的是不完整的分块传输
func (h *SummaryHandler) stream(c *gin.Context, messages []string) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	chunks, err := h.relay.Summarize(ctx, userID, messages)
	if err != nil {
		writeError(c, err)
		return
	}

	chunk, ok := <-chunks
	if ok && chunk.Err != nil {
		writeError(c, chunk.Err)
		return
	}

	header := c.Writer.Header()
	header.Set("Content-Type", "text/plain; charset=utf-8")
	header.Set("Cache-Control", "no-cache")
	header.Set("X-Content-Type-Options", "nosniff")
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()

	written := 0
	for ok {
		if chunk.Err != nil {
			log.FromContext(ctx, h.logger).Error("Summary stream aborted",
				"fragments", written,
				"error", chunk.Err,
			)
			c.Writer.Flush()
			panic(http.ErrAbortHandler)
		}
		if _, err := io.WriteString(c.Writer, chunk.Text); err != nil {
			log.FromContext(ctx, h.logger).Warn("Client went away during summary stream",
				"fragments", written,
				"error", err,
			)
			return
		}
		c.Writer.Flush()
		written++

		chunk, ok = <-chunks
	}
}
