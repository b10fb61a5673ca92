package notification

// NotificationDTO 通知响应，同时作为 WebSocket 推送的消息体
type NotificationDTO struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	SpaceName string `json:"spaceName"`
	MessageID string `json:"messageId"`
	Content   string `json:"content,omitempty"`
	CreatedAt string `json:"createdAt"`
}
