// Package account 定义用户账户领域模型
package account

import "time"

// User 用户实体
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	// VerifyCode 注册验证码（6 位数字）
	VerifyCode       string
	VerifyCodeExpiry time.Time
	IsVerified       bool
	// IsAcceptingMessages 是否接收匿名反馈
	IsAcceptingMessages bool
	CreatedAt           time.Time
}

// CodeExpired 验证码是否已过期
func (u *User) CodeExpired(now time.Time) bool {
	return !now.Before(u.VerifyCodeExpiry)
}
