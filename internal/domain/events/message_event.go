package events

import "time"

// MessageEvent 反馈消息事件
type MessageEvent struct {
	// EventType 事件类型（received/deleted）
	EventType EventType
	// OwnerID 空间所有者用户 ID
	OwnerID string
	// SpaceName 空间名
	SpaceName string
	// MessageID 消息 ID
	MessageID string
	// Content 消息内容（删除事件为空）
	Content string
	// CreatedAt 消息创建时间
	CreatedAt time.Time
	// EventTime 事件发生时间
	EventTime time.Time
}

// Type 实现 Event 接口
func (e *MessageEvent) Type() EventType {
	return e.EventType
}

// Timestamp 实现 Event 接口
func (e *MessageEvent) Timestamp() time.Time {
	return e.EventTime
}
