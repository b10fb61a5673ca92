package summary

import (
	"strings"
	"sync"
)

// State 摘要会话状态
type State int

const (
	// StateIdle 空闲，没有片段
	StateIdle State = iota
	// StateStreaming 正在接收片段
	StateStreaming
	// StateComplete 流正常结束
	StateComplete
	// StateFailed 流以错误结束，已接收的片段保留
	StateFailed
)

// String 返回状态名称
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStreaming:
		return "streaming"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Session 客户端摘要累积会话
// 片段按到达顺序追加，拼接结果即为完整摘要
type Session struct {
	mu        sync.RWMutex
	state     State
	fragments []string
	err       error
}

// NewSession 创建空闲会话
func NewSession() *Session {
	return &Session{state: StateIdle}
}

// Begin 开始接收新的摘要，清空上一次的结果
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateStreaming {
		return ErrSessionBusy
	}
	s.state = StateStreaming
	s.fragments = nil
	s.err = nil
	return nil
}

// Append 追加一个片段
func (s *Session) Append(fragment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStreaming {
		return ErrSessionNotStreaming
	}
	s.fragments = append(s.fragments, fragment)
	return nil
}

// Complete 标记流正常结束
func (s *Session) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateStreaming {
		s.state = StateComplete
	}
}

// Fail 标记流失败，已接收片段不回滚
func (s *Session) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateStreaming {
		s.state = StateFailed
		s.err = err
	}
}

// Clear 清空会话并回到空闲状态
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateIdle
	s.fragments = nil
	s.err = nil
}

// State 当前状态
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Err 失败原因，仅在 StateFailed 时非空
func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Fragments 已接收片段的副本
func (s *Session) Fragments() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.fragments))
	copy(out, s.fragments)
	return out
}

// Text 已接收片段的拼接结果
func (s *Session) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return strings.Join(s.fragments, "")
}
