package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/feedify/backend/internal/domain/feedback"
	"github.com/google/uuid"
)

// publicFeedbackRepository 公开反馈 SQLite 仓储实现
type publicFeedbackRepository struct {
	db *sql.DB
}

// NewPublicFeedbackRepository 创建公开反馈仓储实例
func NewPublicFeedbackRepository(db *sql.DB) feedback.PublicFeedbackRepository {
	return &publicFeedbackRepository{db: db}
}

// Add 添加公开反馈
func (r *publicFeedbackRepository) Add(f *feedback.PublicFeedback) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(`
		INSERT INTO public_feedbacks (id, user_id, space_name, content, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		f.ID, f.UserID, f.SpaceName, f.Content, f.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to add public feedback: %w", err)
	}
	return nil
}

// ListBySpace 按添加顺序列出
func (r *publicFeedbackRepository) ListBySpace(userID, spaceName string) ([]*feedback.PublicFeedback, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, space_name, content, created_at
		FROM public_feedbacks
		WHERE user_id = ? AND space_name = ?
		ORDER BY created_at ASC, rowid ASC`, userID, spaceName)
	if err != nil {
		return nil, fmt.Errorf("failed to query public feedbacks: %w", err)
	}
	defer rows.Close()

	result := make([]*feedback.PublicFeedback, 0)
	for rows.Next() {
		var f feedback.PublicFeedback
		var createdAt int64
		if err := rows.Scan(&f.ID, &f.UserID, &f.SpaceName, &f.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan public feedback: %w", err)
		}
		f.CreatedAt = time.UnixMilli(createdAt)
		result = append(result, &f)
	}
	return result, rows.Err()
}

// 编译时检查接口实现
var _ feedback.PublicFeedbackRepository = (*publicFeedbackRepository)(nil)
