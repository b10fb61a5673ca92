package feedback

// MessageRepository 反馈消息仓储接口
type MessageRepository interface {
	Save(message *Message) error
	// ListBySpace 按创建时间倒序列出空间内的消息
	ListBySpace(userID, spaceName string) ([]*Message, error)
	// Delete 删除所有者的一条消息，不存在返回 ErrMessageNotFound
	Delete(userID, id string) (*Message, error)
}

// PublicFeedbackRepository 公开反馈仓储接口
type PublicFeedbackRepository interface {
	Add(feedback *PublicFeedback) error
	// ListBySpace 按添加顺序列出
	ListBySpace(userID, spaceName string) ([]*PublicFeedback, error)
}
