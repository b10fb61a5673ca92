package feedback

// SendMessageDTO 匿名发送消息请求
type SendMessageDTO struct {
	Content string `json:"content" binding:"required"`
}

// AddPublicFeedbackDTO 添加公开反馈请求
type AddPublicFeedbackDTO struct {
	SpaceName string `json:"spaceName" binding:"required,spacename"`
	Content   string `json:"content" binding:"required"`
}

// MessageDTO 反馈消息
type MessageDTO struct {
	ID        string `json:"id"`
	SpaceName string `json:"spaceName"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// PublicFeedbackDTO 公开反馈
type PublicFeedbackDTO struct {
	ID        string `json:"id"`
	SpaceName string `json:"spaceName"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// SuggestionDTO 建议回复
type SuggestionDTO struct {
	Text        string   `json:"text"`
	Suggestions []string `json:"suggestions"`
}

// ExportDTO 导出结果
type ExportDTO struct {
	Filename    string
	ContentType string
	Body        []byte
}
