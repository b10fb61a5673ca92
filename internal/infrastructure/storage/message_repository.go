package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/feedify/backend/internal/domain/feedback"
	"github.com/google/uuid"
)

// messageRepository 反馈消息 SQLite 仓储实现
type messageRepository struct {
	db *sql.DB
}

// NewMessageRepository 创建反馈消息仓储实例
func NewMessageRepository(db *sql.DB) feedback.MessageRepository {
	return &messageRepository{db: db}
}

// Save 保存消息
func (r *messageRepository) Save(m *feedback.Message) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(`
		INSERT INTO messages (id, user_id, space_name, content, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.SpaceName, m.Content, m.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

// ListBySpace 按创建时间倒序列出空间内的消息
func (r *messageRepository) ListBySpace(userID, spaceName string) ([]*feedback.Message, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, space_name, content, created_at
		FROM messages
		WHERE user_id = ? AND space_name = ?
		ORDER BY created_at DESC, rowid DESC`, userID, spaceName)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	result := make([]*feedback.Message, 0)
	for rows.Next() {
		var m feedback.Message
		var createdAt int64
		if err := rows.Scan(&m.ID, &m.UserID, &m.SpaceName, &m.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.CreatedAt = time.UnixMilli(createdAt)
		result = append(result, &m)
	}
	return result, rows.Err()
}

// Delete 删除所有者的一条消息，返回被删除的消息
func (r *messageRepository) Delete(userID, id string) (*feedback.Message, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var m feedback.Message
	var createdAt int64
	err = tx.QueryRow(`
		SELECT id, user_id, space_name, content, created_at
		FROM messages
		WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(&m.ID, &m.UserID, &m.SpaceName, &m.Content, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, feedback.ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to query message: %w", err)
	}
	m.CreatedAt = time.UnixMilli(createdAt)

	if _, err := tx.Exec(`DELETE FROM messages WHERE id = ? AND user_id = ?`, id, userID); err != nil {
		return nil, fmt.Errorf("failed to delete message: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &m, nil
}

// 编译时检查接口实现
var _ feedback.MessageRepository = (*messageRepository)(nil)
