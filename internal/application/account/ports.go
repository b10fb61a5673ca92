package account

import (
	"context"
	"time"
)

// Mailer 发送验证邮件（定义在 application 层）
type Mailer interface {
	SendVerification(ctx context.Context, email, username, code string) error
}

// PasswordHasher 密码哈希
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

// TokenIssuer 签发访问令牌
type TokenIssuer interface {
	Issue(userID string) (token string, expiresAt time.Time, err error)
}
