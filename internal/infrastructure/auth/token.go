// Package auth 提供访问令牌签发和密码哈希
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/feedify/backend/internal/infrastructure/config"
)

var (
	// ErrInvalidToken 令牌格式或签名错误
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired 令牌已过期
	ErrTokenExpired = errors.New("token has expired")
)

// Token 已验证的访问令牌
type Token struct {
	UserID    string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// TokenIssuer HMAC-SHA256 签名的访问令牌
// 格式：base64url(userID|exp|iat).base64url(signature)
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer 创建令牌签发器
func NewTokenIssuer(cfg *config.AuthConfig) *TokenIssuer {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue 为用户签发令牌，返回令牌和过期时间
func (i *TokenIssuer) Issue(userID string) (string, time.Time, error) {
	if len(i.secret) == 0 {
		return "", time.Time{}, errors.New("secret key is required")
	}
	if userID == "" || strings.Contains(userID, "|") {
		return "", time.Time{}, fmt.Errorf("invalid user id %q", userID)
	}

	now := i.now()
	expiresAt := now.Add(i.ttl)
	payload := fmt.Sprintf("%s|%d|%d", userID, expiresAt.Unix(), now.Unix())

	encodedPayload := base64.RawURLEncoding.EncodeToString([]byte(payload))
	encodedSignature := base64.RawURLEncoding.EncodeToString(i.sign([]byte(payload)))
	return encodedPayload + "." + encodedSignature, expiresAt, nil
}

// Parse 校验签名和过期时间
func (i *TokenIssuer) Parse(tokenString string) (*Token, error) {
	encodedPayload, encodedSignature, ok := strings.Cut(tokenString, ".")
	if !ok {
		return nil, ErrInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(encodedPayload)
	if err != nil {
		return nil, ErrInvalidToken
	}
	signature, err := base64.RawURLEncoding.DecodeString(encodedSignature)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !hmac.Equal(signature, i.sign(payload)) {
		return nil, ErrInvalidToken
	}

	parts := strings.Split(string(payload), "|")
	if len(parts) != 3 || parts[0] == "" {
		return nil, ErrInvalidToken
	}
	exp, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	iat, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	token := &Token{
		UserID:    parts[0],
		ExpiresAt: time.Unix(exp, 0),
		IssuedAt:  time.Unix(iat, 0),
	}
	if !i.now().Before(token.ExpiresAt) {
		return nil, ErrTokenExpired
	}
	return token, nil
}

func (i *TokenIssuer) sign(payload []byte) []byte {
	h := hmac.New(sha256.New, i.secret)
	h.Write(payload)
	return h.Sum(nil)
}
