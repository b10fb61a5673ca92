package feedback

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	// ErrEmptyContent 内容为空
	ErrEmptyContent = errors.New("message content is required")
	// ErrContentTooLong 内容过长
	ErrContentTooLong = errors.New("message content must be no longer than 300 characters")
	// ErrMessageNotFound 消息不存在
	ErrMessageNotFound = errors.New("message not found or already deleted")
	// ErrNotAcceptingMessages 所有者关闭了消息接收
	ErrNotAcceptingMessages = errors.New("user is not accepting messages")
	// ErrNoMessagesToExport 没有可导出的消息
	ErrNoMessagesToExport = errors.New("there are no messages to export")
)

// MaxContentLength 消息最大字符数
const MaxContentLength = 300

// Service 领域服务
type Service struct{}

// NewService 创建领域服务
func NewService() *Service {
	return &Service{}
}

// NormalizeContent 校验并规整消息内容
func (s *Service) NormalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return "", ErrContentTooLong
	}
	return content, nil
}

// Contents 提取消息文本，保持原有顺序
func Contents(messages []*Message) []string {
	out := make([]string, 0, len(messages))
	for _, m := range messages {
		out = append(out, m.Content)
	}
	return out
}
