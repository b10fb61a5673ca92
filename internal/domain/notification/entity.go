package notification

import "time"

// Notification 推送给空间所有者的通知
type Notification struct {
	ID        string
	UserID    string
	Type      Type
	SpaceName string
	MessageID string
	Content   string
	CreatedAt time.Time
}

// Type 通知类型
type Type string

const (
	// TypeMessageReceived 收到新反馈
	TypeMessageReceived Type = "message.received"
	// TypeMessageDeleted 反馈已删除
	TypeMessageDeleted Type = "message.deleted"
)

// Valid 是否为已知类型
func (t Type) Valid() bool {
	return t == TypeMessageReceived || t == TypeMessageDeleted
}
