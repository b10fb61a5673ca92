package account

import "time"

// Repository 用户仓储接口
type Repository interface {
	// Save 新增或按 ID 更新用户
	Save(user *User) error
	// FindByID 按 ID 查找，不存在返回 ErrUserNotFound
	FindByID(id string) (*User, error)
	// FindByUsername 按用户名查找，不存在返回 ErrUserNotFound
	FindByUsername(username string) (*User, error)
	// FindByEmail 按邮箱查找，不存在返回 ErrUserNotFound
	FindByEmail(email string) (*User, error)
	// SetAcceptingMessages 更新是否接收消息
	SetAcceptingMessages(id string, accepting bool) error
	// DeleteUnverifiedBefore 删除验证码在 cutoff 之前过期的未验证用户，返回删除数量
	DeleteUnverifiedBefore(cutoff time.Time) (int64, error)
}
