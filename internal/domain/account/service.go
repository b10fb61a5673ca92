package account

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"
)

var (
	// ErrInvalidUsername 用户名不合法
	ErrInvalidUsername = errors.New("username must be 2-20 characters and contain only letters, numbers and underscores")
	// ErrInvalidEmail 邮箱不合法
	ErrInvalidEmail = errors.New("please use a valid email address")
	// ErrWeakPassword 密码过短
	ErrWeakPassword = errors.New("password must be at least 6 characters")
	// ErrUsernameTaken 用户名已被占用
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrEmailTaken 邮箱已被注册
	ErrEmailTaken = errors.New("user already exists with this email")
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrNotVerified 账户未验证
	ErrNotVerified = errors.New("please verify your account before signing in")
	// ErrAlreadyVerified 账户已验证
	ErrAlreadyVerified = errors.New("account is already verified")
	// ErrCodeExpired 验证码已过期
	ErrCodeExpired = errors.New("verification code has expired, please sign up again")
	// ErrCodeIncorrect 验证码错误
	ErrCodeIncorrect = errors.New("incorrect verification code")
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{2,20}$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// MinPasswordLength 密码最小长度
const MinPasswordLength = 6

// Service 领域服务（纯业务逻辑）
type Service struct{}

// NewService 创建领域服务
func NewService() *Service {
	return &Service{}
}

// NormalizeUsername 去除首尾空白
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// NormalizeEmail 去除空白并转小写
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateUsername 校验用户名
func (s *Service) ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// ValidateSignUp 校验注册信息
func (s *Service) ValidateSignUp(username, email, password string) error {
	if err := s.ValidateUsername(username); err != nil {
		return err
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// GenerateVerifyCode 生成 6 位数字验证码
func (s *Service) GenerateVerifyCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// CheckVerifyCode 校验验证码
func (s *Service) CheckVerifyCode(u *User, code string, now time.Time) error {
	if u.IsVerified {
		return ErrAlreadyVerified
	}
	if u.CodeExpired(now) {
		return ErrCodeExpired
	}
	if strings.TrimSpace(code) != u.VerifyCode {
		return ErrCodeIncorrect
	}
	return nil
}
