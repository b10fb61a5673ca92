// Package llm 基于 OpenAI 兼容接口的文本生成客户端
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/feedify/backend/internal/application/summary"
	"github.com/feedify/backend/internal/infrastructure/config"
	"github.com/feedify/backend/internal/infrastructure/log"
)

// ErrNoChoices 后端没有返回任何结果
var ErrNoChoices = errors.New("LLM API returned no choices")

// Client LLM Chat 客户端
type Client struct {
	client  openai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewClient 创建 LLM 客户端
func NewClient(cfg *config.LLMConfig) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		client:  openai.NewClient(opts...),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  log.NewModuleLogger("llm", "client"),
	}
}

func (c *Client) params(prompt string) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
}

// Complete 一次性生成完整文本
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.logger.Debug("Sending LLM completion request", "model", c.model)

	resp, err := c.client.Chat.Completions.New(ctx, c.params(prompt))
	if err != nil {
		return "", fmt.Errorf("LLM API request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	c.logger.Debug("LLM completion successful",
		"model", c.model,
		"tokens", resp.Usage.TotalTokens,
	)
	return resp.Choices[0].Message.Content, nil
}

// Stream 流式生成文本，片段按后端产生顺序发送
// 空的增量片段（例如只携带角色或结束原因的块）不会转发。
// ctx 取消后关闭后端连接，通道随之关闭。
func (c *Client) Stream(ctx context.Context, prompt string) (<-chan summary.Chunk, error) {
	c.logger.Debug("Opening LLM stream", "model", c.model)

	stream := c.client.Chat.Completions.NewStreaming(ctx, c.params(prompt))
	out := make(chan summary.Chunk)

	go func() {
		defer close(out)
		defer stream.Close()

		send := func(chunk summary.Chunk) bool {
			select {
			case out <- chunk:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for stream.Next() {
			current := stream.Current()
			if len(current.Choices) == 0 {
				continue
			}
			text := current.Choices[0].Delta.Content
			if text == "" {
				continue
			}
			if !send(summary.Chunk{Text: text}) {
				return
			}
		}

		if err := stream.Err(); err != nil {
			send(summary.Chunk{Err: fmt.Errorf("LLM stream failed: %w", err)})
		}
	}()

	return out, nil
}

// 编译时检查接口实现
var _ summary.Generator = (*Client)(nil)
