// Package account 账户用例：注册、验证、登录和消息接收开关
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/feedify/backend/internal/domain/account"
	"github.com/feedify/backend/internal/infrastructure/config"
	"github.com/feedify/backend/internal/infrastructure/log"
)

// Service 账户应用服务
type Service struct {
	repo          account.Repository
	domainSvc     *account.Service
	hasher        PasswordHasher
	tokens        TokenIssuer
	mailer        Mailer
	verifyCodeTTL time.Duration
	now           func() time.Time
	logger        *slog.Logger
}

// NewService 创建账户应用服务
func NewService(
	repo account.Repository,
	domainSvc *account.Service,
	hasher PasswordHasher,
	tokens TokenIssuer,
	mailer Mailer,
	cfg *config.AuthConfig,
) *Service {
	ttl := cfg.VerifyCodeTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{
		repo:          repo,
		domainSvc:     domainSvc,
		hasher:        hasher,
		tokens:        tokens,
		mailer:        mailer,
		verifyCodeTTL: ttl,
		now:           time.Now,
		logger:        log.NewModuleLogger("account", "service"),
	}
}

// SignUp 注册账户并发送验证码
// 未验证的邮箱可以重新注册，密码和验证码会被刷新
func (s *Service) SignUp(ctx context.Context, dto *SignUpDTO) error {
	username := account.NormalizeUsername(dto.Username)
	email := account.NormalizeEmail(dto.Email)
	if err := s.domainSvc.ValidateSignUp(username, email, dto.Password); err != nil {
		return err
	}

	byName, err := s.repo.FindByUsername(username)
	if err != nil && !errors.Is(err, account.ErrUserNotFound) {
		return err
	}
	if byName != nil && byName.IsVerified {
		return account.ErrUsernameTaken
	}

	code, err := s.domainSvc.GenerateVerifyCode()
	if err != nil {
		return err
	}
	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	expiry := s.now().Add(s.verifyCodeTTL)

	user, err := s.repo.FindByEmail(email)
	switch {
	case err == nil:
		if user.IsVerified {
			return account.ErrEmailTaken
		}
		user.Username = username
		user.PasswordHash = hash
		user.VerifyCode = code
		user.VerifyCodeExpiry = expiry
	case errors.Is(err, account.ErrUserNotFound):
		user = &account.User{
			Username:            username,
			Email:               email,
			PasswordHash:        hash,
			VerifyCode:          code,
			VerifyCodeExpiry:    expiry,
			IsAcceptingMessages: true,
			CreatedAt:           s.now(),
		}
	default:
		return err
	}

	if err := s.repo.Save(user); err != nil {
		return err
	}

	if err := s.mailer.SendVerification(ctx, email, username, code); err != nil {
		s.logger.Error("Failed to send verification email",
			"username", username,
			"error", err,
		)
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	s.logger.Info("User signed up", "user_id", user.ID, "username", username)
	return nil
}

// CheckUsername 用户名是否可用（只有已验证用户占用用户名）
func (s *Service) CheckUsername(username string) (bool, error) {
	username = account.NormalizeUsername(username)
	if err := s.domainSvc.ValidateUsername(username); err != nil {
		return false, err
	}
	user, err := s.repo.FindByUsername(username)
	if errors.Is(err, account.ErrUserNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return !user.IsVerified, nil
}

// Verify 校验注册验证码
func (s *Service) Verify(dto *VerifyDTO) error {
	user, err := s.repo.FindByUsername(account.NormalizeUsername(dto.Username))
	if err != nil {
		return err
	}
	if err := s.domainSvc.CheckVerifyCode(user, dto.Code, s.now()); err != nil {
		return err
	}

	user.IsVerified = true
	user.VerifyCode = ""
	if err := s.repo.Save(user); err != nil {
		return err
	}
	s.logger.Info("User verified", "user_id", user.ID)
	return nil
}

// SignIn 使用用户名或邮箱登录，返回访问令牌
func (s *Service) SignIn(dto *SignInDTO) (*TokenDTO, error) {
	identifier := strings.TrimSpace(dto.Identifier)

	var user *account.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.repo.FindByEmail(account.NormalizeEmail(identifier))
	} else {
		user, err = s.repo.FindByUsername(identifier)
	}
	if errors.Is(err, account.ErrUserNotFound) {
		return nil, account.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	ok, err := s.hasher.Compare(user.PasswordHash, dto.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to compare password: %w", err)
	}
	if !ok {
		return nil, account.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, account.ErrNotVerified
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &TokenDTO{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		User:      toUserDTO(user),
	}, nil
}

// Me 返回当前用户信息
func (s *Service) Me(userID string) (*UserDTO, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

// GetAcceptMessages 是否接收匿名消息
func (s *Service) GetAcceptMessages(userID string) (bool, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return false, err
	}
	return user.IsAcceptingMessages, nil
}

// SetAcceptMessages 更新是否接收匿名消息
func (s *Service) SetAcceptMessages(userID string, accepting bool) error {
	if err := s.repo.SetAcceptingMessages(userID, accepting); err != nil {
		return err
	}
	s.logger.Info("Accept messages updated", "user_id", userID, "accepting", accepting)
	return nil
}

// PurgeUnverified 删除验证码已过期的未验证账户
func (s *Service) PurgeUnverified(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.repo.DeleteUnverifiedBefore(s.now())
}

func toUserDTO(u *account.User) *UserDTO {
	return &UserDTO{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		IsAcceptingMessages: u.IsAcceptingMessages,
	}
}
