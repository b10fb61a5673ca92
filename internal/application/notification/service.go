package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/feedify/backend/internal/domain/events"
	"github.com/feedify/backend/internal/domain/notification"
	"github.com/feedify/backend/internal/infrastructure/log"
	"github.com/google/uuid"
)

// DefaultRecentLimit 最近通知的默认条数
const DefaultRecentLimit = 20

// Service 应用服务（用例编排）
type Service struct {
	domainRepo notification.Repository
	domainSvc  *notification.Service
	pusher     Pusher
	logger     *slog.Logger
}

// NewService 创建应用服务
func NewService(
	domainRepo notification.Repository,
	domainSvc *notification.Service,
	pusher Pusher,
) *Service {
	return &Service{
		domainRepo: domainRepo,
		domainSvc:  domainSvc,
		pusher:     pusher,
		logger:     log.NewModuleLogger("notification", "service"),
	}
}

// Subscribe 订阅反馈消息事件，返回取消订阅函数
func (s *Service) Subscribe(bus events.EventBus) func() {
	return bus.SubscribeMultiple(
		[]events.EventType{events.MessageReceived, events.MessageDeleted},
		events.HandlerFunc(s.HandleEvent),
	)
}

// HandleEvent 把消息事件转换为通知，保存并推送给空间所有者
func (s *Service) HandleEvent(ctx context.Context, event events.Event) error {
	msgEvent, ok := event.(*events.MessageEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T", event)
	}

	notif := &notification.Notification{
		ID:        uuid.New().String(),
		UserID:    msgEvent.OwnerID,
		Type:      notification.Type(msgEvent.EventType),
		SpaceName: msgEvent.SpaceName,
		MessageID: msgEvent.MessageID,
		Content:   msgEvent.Content,
		CreatedAt: msgEvent.EventTime,
	}
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now()
	}

	if err := s.domainSvc.Validate(notif); err != nil {
		return err
	}
	if err := s.domainRepo.Save(notif); err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}

	// 推送失败不影响保存
	if err := s.pusher.PushToUser(notif.UserID, toDTO(notif)); err != nil {
		s.logger.Warn("Failed to push notification",
			"user_id", notif.UserID,
			"type", notif.Type,
			"error", err,
		)
	}
	return nil
}

// ListRecent 返回用户最近的通知
func (s *Service) ListRecent(userID string, limit int) ([]*NotificationDTO, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	items, err := s.domainRepo.ListByUser(userID, limit)
	if err != nil {
		return nil, err
	}
	result := make([]*NotificationDTO, 0, len(items))
	for _, n := range items {
		result = append(result, toDTO(n))
	}
	return result, nil
}

// toDTO 转换为 DTO
func toDTO(n *notification.Notification) *NotificationDTO {
	return &NotificationDTO{
		ID:        n.ID,
		Type:      string(n.Type),
		SpaceName: n.SpaceName,
		MessageID: n.MessageID,
		Content:   n.Content,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}
