package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/feedify/backend/internal/domain/account"
	"github.com/google/uuid"
)

// userRepository 用户 SQLite 仓储实现
type userRepository struct {
	db *sql.DB
}

// NewUserRepository 创建用户仓储实例
func NewUserRepository(db *sql.DB) account.Repository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, password_hash, verify_code, verify_code_expiry,
	is_verified, is_accepting_messages, created_at`

// Save 新增或按 ID 更新用户
func (r *userRepository) Save(u *account.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			email = excluded.email,
			password_hash = excluded.password_hash,
			verify_code = excluded.verify_code,
			verify_code_expiry = excluded.verify_code_expiry,
			is_verified = excluded.is_verified,
			is_accepting_messages = excluded.is_accepting_messages`

	_, err := r.db.Exec(query,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.VerifyCode,
		u.VerifyCodeExpiry.UnixMilli(),
		boolToInt(u.IsVerified),
		boolToInt(u.IsAcceptingMessages),
		u.CreatedAt.UnixMilli(),
	)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err, "users.username"):
		return account.ErrUsernameTaken
	case isUniqueViolation(err, "users.email"):
		return account.ErrEmailTaken
	default:
		return fmt.Errorf("failed to save user: %w", err)
	}
}

// FindByID 按 ID 查找
func (r *userRepository) FindByID(id string) (*account.User, error) {
	return r.findOne(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// FindByUsername 按用户名查找（不区分大小写）
func (r *userRepository) FindByUsername(username string) (*account.User, error) {
	return r.findOne(`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

// FindByEmail 按邮箱查找
func (r *userRepository) FindByEmail(email string) (*account.User, error) {
	return r.findOne(`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *userRepository) findOne(query string, arg any) (*account.User, error) {
	var u account.User
	var expiry, createdAt int64
	var verified, accepting int

	err := r.db.QueryRow(query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.VerifyCode,
		&expiry,
		&verified,
		&accepting,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	u.VerifyCodeExpiry = time.UnixMilli(expiry)
	u.IsVerified = verified == 1
	u.IsAcceptingMessages = accepting == 1
	u.CreatedAt = time.UnixMilli(createdAt)
	return &u, nil
}

// SetAcceptingMessages 更新是否接收消息
func (r *userRepository) SetAcceptingMessages(id string, accepting bool) error {
	result, err := r.db.Exec(`UPDATE users SET is_accepting_messages = ? WHERE id = ?`, boolToInt(accepting), id)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return account.ErrUserNotFound
	}
	return nil
}

// DeleteUnverifiedBefore 删除验证码已过期的未验证用户
func (r *userRepository) DeleteUnverifiedBefore(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM users WHERE is_verified = 0 AND verify_code_expiry < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to delete unverified users: %w", err)
	}
	return result.RowsAffected()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// 编译时检查接口实现
var _ account.Repository = (*userRepository)(nil)
