package space

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidName 空间名不合法
	ErrInvalidName = errors.New("space name must be 3-50 characters of letters, numbers, dashes or underscores")
	// ErrInvalidTitle 标题长度不合法
	ErrInvalidTitle = errors.New("title must be 5-100 characters")
	// ErrSpaceExists 空间已存在
	ErrSpaceExists = errors.New("space already exists")
	// ErrSpaceNotFound 空间不存在
	ErrSpaceNotFound = errors.New("space not found")
)

// 名称与标题约束
const (
	MinTitleLength = 5
	MaxTitleLength = 100
)

// NamePattern 空间名规则
var NamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,50}$`)

// Service 领域服务
type Service struct{}

// NewService 创建领域服务
func NewService() *Service {
	return &Service{}
}

// ValidName 空间名是否合法
func ValidName(name string) bool {
	return NamePattern.MatchString(name)
}

// Validate 校验空间名和标题
func (s *Service) Validate(name, title string) error {
	if !ValidName(name) {
		return ErrInvalidName
	}
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	if n < MinTitleLength || n > MaxTitleLength {
		return ErrInvalidTitle
	}
	return nil
}
