package notification

import "errors"

var (
	// ErrInvalidUser 缺少接收用户
	ErrInvalidUser = errors.New("invalid notification user")
	// ErrInvalidType 未知通知类型
	ErrInvalidType = errors.New("invalid notification type")
)

// Service 领域服务（纯业务逻辑）
type Service struct{}

// NewService 创建领域服务
func NewService() *Service {
	return &Service{}
}

// Validate 验证通知内容
func (s *Service) Validate(n *Notification) error {
	if n.UserID == "" {
		return ErrInvalidUser
	}
	if !n.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}
