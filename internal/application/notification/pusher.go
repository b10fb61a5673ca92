package notification

// Pusher 推送接口（定义在 application 层）
// 这是应用层需要的技术能力，不是领域概念
type Pusher interface {
	// PushToUser 推送给用户的所有在线连接，用户不在线时不返回错误
	PushToUser(userID string, payload any) error
}
