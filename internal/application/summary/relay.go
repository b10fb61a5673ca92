// Package summary 实现反馈摘要的流式转发与客户端累积
package summary

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainSummary "github.com/feedify/backend/internal/domain/summary"
	"github.com/feedify/backend/internal/infrastructure/config"
	"github.com/feedify/backend/internal/infrastructure/log"
)

// Relay 摘要流转发服务
// 每次调用只发起一次后端请求，片段按到达顺序原样转发
type Relay struct {
	gen             Generator
	counter         TokenCounter
	fragmentTimeout time.Duration
	maxPromptTokens int
	logger          *slog.Logger
}

// NewRelay 创建摘要转发服务
func NewRelay(gen Generator, counter TokenCounter, cfg *config.SummaryConfig) *Relay {
	r := &Relay{
		gen:     gen,
		counter: counter,
		logger:  log.NewModuleLogger("summary", "relay"),
	}
	if cfg != nil {
		r.fragmentTimeout = cfg.FragmentTimeout
		r.maxPromptTokens = cfg.MaxPromptTokens
	}
	return r
}

// prepare 校验调用方和批次并生成提示词，失败时不会触发后端调用
func (r *Relay) prepare(callerID string, messages []string) (string, error) {
	if callerID == "" {
		return "", domainSummary.ErrUnauthenticated
	}

	batch, err := domainSummary.NewBatch(messages)
	if err != nil {
		return "", err
	}

	prompt := batch.Prompt()
	if r.maxPromptTokens > 0 && r.counter != nil {
		if n := r.counter.CountTokens(prompt); n > r.maxPromptTokens {
			r.logger.Warn("Prompt exceeds token limit",
				"tokens", n,
				"limit", r.maxPromptTokens,
				"messages", batch.Len(),
			)
			return "", domainSummary.ErrBatchTooLarge
		}
	}
	return prompt, nil
}

// Summarize 流式摘要
// 返回的通道按后端产生顺序输出片段；若流以错误结束，最后一个 Chunk 携带错误。
// ctx 取消后停止转发并取消后端请求，通道随之关闭。
func (r *Relay) Summarize(ctx context.Context, callerID string, messages []string) (<-chan Chunk, error) {
	prompt, err := r.prepare(callerID, messages)
	if err != nil {
		return nil, err
	}

	streamCtx, cancel := context.WithCancel(ctx)
	src, err := r.gen.Stream(streamCtx, prompt)
	if err != nil {
		cancel()
		r.logger.Error("Failed to open summary stream",
			"user_id", callerID,
			"error", err,
		)
		return nil, &domainSummary.BackendError{Err: err}
	}

	r.logger.Debug("Summary stream opened",
		"user_id", callerID,
		"messages", len(messages),
	)

	out := make(chan Chunk)
	go r.forward(streamCtx, cancel, callerID, src, out)
	return out, nil
}

// forward 把后端片段转发给调用方
func (r *Relay) forward(ctx context.Context, cancel context.CancelFunc, callerID string, src <-chan Chunk, out chan<- Chunk) {
	defer close(out)
	defer cancel()

	var timer *time.Timer
	var timeout <-chan time.Time
	if r.fragmentTimeout > 0 {
		timer = time.NewTimer(r.fragmentTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	forwarded := 0
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Summary stream cancelled by caller",
				"user_id", callerID,
				"fragments", forwarded,
			)
			return

		case <-timeout:
			r.logger.Error("Summary stream timed out",
				"user_id", callerID,
				"fragments", forwarded,
				"timeout", r.fragmentTimeout,
			)
			r.emit(ctx, out, Chunk{Err: &domainSummary.BackendError{Err: domainSummary.ErrBackendTimeout}})
			return

		case chunk, ok := <-src:
			if !ok {
				r.logger.Debug("Summary stream completed",
					"user_id", callerID,
					"fragments", forwarded,
				)
				return
			}
			if chunk.Err != nil {
				if errors.Is(chunk.Err, context.Canceled) && ctx.Err() != nil {
					return
				}
				r.logger.Error("Summary stream failed",
					"user_id", callerID,
					"fragments", forwarded,
					"error", chunk.Err,
				)
				r.emit(ctx, out, Chunk{Err: &domainSummary.BackendError{Err: chunk.Err}})
				return
			}
			if !r.emit(ctx, out, chunk) {
				return
			}
			forwarded++
			if timer != nil {
				timer.Reset(r.fragmentTimeout)
			}
		}
	}
}

// emit 发送一个 Chunk，调用方离开时返回 false
func (r *Relay) emit(ctx context.Context, out chan<- Chunk, chunk Chunk) bool {
	select {
	case out <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}

// SummarizeText 非流式摘要，结果与流式片段拼接一致
func (r *Relay) SummarizeText(ctx context.Context, callerID string, messages []string) (string, error) {
	prompt, err := r.prepare(callerID, messages)
	if err != nil {
		return "", err
	}

	text, err := r.gen.Complete(ctx, prompt)
	if err != nil {
		r.logger.Error("Summary completion failed",
			"user_id", callerID,
			"error", err,
		)
		return "", &domainSummary.BackendError{Err: err}
	}
	return text, nil
}
