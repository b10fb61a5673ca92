// Package feedback 定义匿名反馈与公开反馈墙领域模型
package feedback

import "time"

// Message 一条匿名反馈
type Message struct {
	ID        string
	UserID    string
	SpaceName string
	Content   string
	CreatedAt time.Time
}

// PublicFeedback 所有者公开展示的反馈
type PublicFeedback struct {
	ID        string
	UserID    string
	SpaceName string
	Content   string
	CreatedAt time.Time
}
