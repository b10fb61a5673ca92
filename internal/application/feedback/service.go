// Package feedback 匿名反馈、导出、建议回复和公开反馈墙用例
package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	appSummary "github.com/feedify/backend/internal/application/summary"
	"github.com/feedify/backend/internal/domain/account"
	"github.com/feedify/backend/internal/domain/events"
	"github.com/feedify/backend/internal/domain/feedback"
	"github.com/feedify/backend/internal/domain/space"
	domainSummary "github.com/feedify/backend/internal/domain/summary"
	"github.com/feedify/backend/internal/infrastructure/log"
)

// suggestPrompt 建议回复提示词
const suggestPrompt = "Suggest 3 responses to the following message: %s in short words and make it as a possible answer to the question and write the answers write the answers and dont add serial number to the answers and separate the answers with a comma"

// Service 反馈应用服务
type Service struct {
	messages  feedback.MessageRepository
	public    feedback.PublicFeedbackRepository
	spaces    space.Repository
	users     account.Repository
	domainSvc *feedback.Service
	gen       appSummary.Generator
	bus       events.EventBus
	logger    *slog.Logger
}

// NewService 创建反馈应用服务
func NewService(
	messages feedback.MessageRepository,
	public feedback.PublicFeedbackRepository,
	spaces space.Repository,
	users account.Repository,
	domainSvc *feedback.Service,
	gen appSummary.Generator,
	bus events.EventBus,
) *Service {
	return &Service{
		messages:  messages,
		public:    public,
		spaces:    spaces,
		users:     users,
		domainSvc: domainSvc,
		gen:       gen,
		bus:       bus,
		logger:    log.NewModuleLogger("feedback", "service"),
	}
}

// Send 匿名向用户的空间发送消息，保存后发布 message.received 事件
func (s *Service) Send(ctx context.Context, username, spaceName string, dto *SendMessageDTO) (*MessageDTO, error) {
	content, err := s.domainSvc.NormalizeContent(dto.Content)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(account.NormalizeUsername(username))
	if err != nil {
		return nil, err
	}
	if !user.IsAcceptingMessages {
		return nil, feedback.ErrNotAcceptingMessages
	}
	if _, err := s.spaces.FindByName(user.ID, spaceName); err != nil {
		return nil, err
	}

	msg := &feedback.Message{
		UserID:    user.ID,
		SpaceName: spaceName,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.messages.Save(msg); err != nil {
		return nil, err
	}

	s.publish(&events.MessageEvent{
		EventType: events.MessageReceived,
		OwnerID:   user.ID,
		SpaceName: spaceName,
		MessageID: msg.ID,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
		EventTime: time.Now(),
	})

	log.FromContext(ctx, s.logger).Debug("Message received",
		"owner_id", user.ID,
		"space", spaceName,
	)
	return toMessageDTO(msg), nil
}

// List 按创建时间倒序列出空间内的消息
func (s *Service) List(userID, spaceName string) ([]*MessageDTO, error) {
	messages, err := s.listOwned(userID, spaceName)
	if err != nil {
		return nil, err
	}
	result := make([]*MessageDTO, 0, len(messages))
	for _, m := range messages {
		result = append(result, toMessageDTO(m))
	}
	return result, nil
}

// Contents 空间内消息文本，顺序与 List 一致
func (s *Service) Contents(userID, spaceName string) ([]string, error) {
	messages, err := s.listOwned(userID, spaceName)
	if err != nil {
		return nil, err
	}
	return feedback.Contents(messages), nil
}

func (s *Service) listOwned(userID, spaceName string) ([]*feedback.Message, error) {
	if _, err := s.spaces.FindByName(userID, spaceName); err != nil {
		return nil, err
	}
	return s.messages.ListBySpace(userID, spaceName)
}

// Delete 删除所有者的一条消息，发布 message.deleted 事件
func (s *Service) Delete(ctx context.Context, userID, messageID string) error {
	msg, err := s.messages.Delete(userID, messageID)
	if err != nil {
		return err
	}

	s.publish(&events.MessageEvent{
		EventType: events.MessageDeleted,
		OwnerID:   userID,
		SpaceName: msg.SpaceName,
		MessageID: msg.ID,
		CreatedAt: msg.CreatedAt,
		EventTime: time.Now(),
	})

	log.FromContext(ctx, s.logger).Info("Message deleted",
		"owner_id", userID,
		"message_id", messageID,
	)
	return nil
}

// Export 导出空间内的消息（json 或 csv）
func (s *Service) Export(userID, spaceName, format string) (*ExportDTO, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatCSV {
		return nil, ErrUnsupportedFormat
	}

	messages, err := s.listOwned(userID, spaceName)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, feedback.ErrNoMessagesToExport
	}
	return encodeMessages(spaceName, format, messages)
}

// SuggestReplies 生成 3 条建议回复
func (s *Service) SuggestReplies(ctx context.Context, message string) (*SuggestionDTO, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, feedback.ErrEmptyContent
	}

	text, err := s.gen.Complete(ctx, fmt.Sprintf(suggestPrompt, message))
	if err != nil {
		s.logger.Error("Failed to suggest replies", "error", err)
		return nil, &domainSummary.BackendError{Err: err}
	}

	return &SuggestionDTO{
		Text:        text,
		Suggestions: splitSuggestions(text),
	}, nil
}

// splitSuggestions 按逗号拆分并去除空项
func splitSuggestions(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AddPublic 所有者把反馈添加到空间的公开墙
func (s *Service) AddPublic(userID string, dto *AddPublicFeedbackDTO) (*PublicFeedbackDTO, error) {
	content, err := s.domainSvc.NormalizeContent(dto.Content)
	if err != nil {
		return nil, err
	}
	if _, err := s.spaces.FindByName(userID, dto.SpaceName); err != nil {
		return nil, err
	}

	pf := &feedback.PublicFeedback{
		UserID:    userID,
		SpaceName: dto.SpaceName,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.public.Add(pf); err != nil {
		return nil, err
	}
	return toPublicDTO(pf), nil
}

// GetPublic 公开页面的反馈墙，按添加顺序
func (s *Service) GetPublic(username, spaceName string) ([]*PublicFeedbackDTO, error) {
	user, err := s.users.FindByUsername(account.NormalizeUsername(username))
	if err != nil {
		return nil, err
	}
	if _, err := s.spaces.FindByName(user.ID, spaceName); err != nil {
		return nil, err
	}

	items, err := s.public.ListBySpace(user.ID, spaceName)
	if err != nil {
		return nil, err
	}
	result := make([]*PublicFeedbackDTO, 0, len(items))
	for _, pf := range items {
		result = append(result, toPublicDTO(pf))
	}
	return result, nil
}

func (s *Service) publish(event events.Event) {
	if s.bus != nil {
		s.bus.Publish(event)
	}
}

func toMessageDTO(m *feedback.Message) *MessageDTO {
	return &MessageDTO{
		ID:        m.ID,
		SpaceName: m.SpaceName,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}

func toPublicDTO(pf *feedback.PublicFeedback) *PublicFeedbackDTO {
	return &PublicFeedbackDTO{
		ID:        pf.ID,
		SpaceName: pf.SpaceName,
		Content:   pf.Content,
		CreatedAt: pf.CreatedAt.Format(time.RFC3339),
	}
}
