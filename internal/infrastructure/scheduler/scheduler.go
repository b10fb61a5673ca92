// Package scheduler 运行后台定时任务
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/feedify/backend/internal/infrastructure/config"
	"github.com/feedify/backend/internal/infrastructure/log"
)

// Purger 清理过期未验证账户
type Purger interface {
	PurgeUnverified(ctx context.Context) (int64, error)
}

// Scheduler 定时任务调度器
type Scheduler struct {
	cron      *cron.Cron
	purger    Purger
	purgeSpec string
	ctx       context.Context
	cancel    context.CancelFunc
	logger    *slog.Logger
}

// NewScheduler 创建调度器
func NewScheduler(cfg *config.SchedulerConfig, purger Purger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		purger:    purger,
		purgeSpec: cfg.PurgeSpec,
		ctx:       ctx,
		cancel:    cancel,
		logger:    log.NewModuleLogger("scheduler", "cron"),
	}
}

// Start 注册任务并启动调度，PurgeSpec 为空时不注册清理任务
func (s *Scheduler) Start() error {
	if s.purger == nil {
		return errors.New("purger is required")
	}
	if s.purgeSpec != "" {
		if _, err := s.cron.AddFunc(s.purgeSpec, s.purgeUnverified); err != nil {
			return fmt.Errorf("invalid purge schedule %q: %w", s.purgeSpec, err)
		}
	}

	s.cron.Start()
	s.logger.Info("Scheduler started", "purge_spec", s.purgeSpec)
	return nil
}

// purgeUnverified 删除验证码已过期的未验证账户
func (s *Scheduler) purgeUnverified() {
	n, err := s.purger.PurgeUnverified(s.ctx)
	if err != nil {
		s.logger.Error("Failed to purge unverified users", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("Purged unverified users", "count", n)
	}
}

// Stop 停止调度并等待运行中的任务结束
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
}
