package notification

// Repository 通知仓储接口
type Repository interface {
	Save(notification *Notification) error
	// ListByUser 按时间倒序返回用户最近的通知，limit <= 0 时返回全部
	ListByUser(userID string, limit int) ([]*Notification, error)
}
