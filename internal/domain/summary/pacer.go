package summary

import (
	"context"
	"math/rand/v2"
	"time"
)

// Pacer 控制片段渲染之间的停顿
type Pacer interface {
	Pause(ctx context.Context) error
}

// NoPacer 不做任何停顿
type NoPacer struct{}

// Pause 实现 Pacer 接口
func (NoPacer) Pause(ctx context.Context) error {
	return ctx.Err()
}

// 默认渲染节奏
const (
	DefaultPaceMin = 150 * time.Millisecond
	DefaultPaceMax = 300 * time.Millisecond
)

// RandomPacer 在 [Min, Max] 区间内随机停顿
type RandomPacer struct {
	Min time.Duration
	Max time.Duration
}

// NewRandomPacer 使用默认区间创建随机节奏器
func NewRandomPacer() *RandomPacer {
	return &RandomPacer{Min: DefaultPaceMin, Max: DefaultPaceMax}
}

// Delay 计算一次停顿时长
func (p *RandomPacer) Delay() time.Duration {
	if p.Max <= p.Min {
		return p.Min
	}
	return p.Min + time.Duration(rand.Int64N(int64(p.Max-p.Min)+1))
}

// Pause 实现 Pacer 接口
func (p *RandomPacer) Pause(ctx context.Context) error {
	timer := time.NewTimer(p.Delay())
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
