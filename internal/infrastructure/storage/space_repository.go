package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/feedify/backend/internal/domain/space"
	"github.com/google/uuid"
)

// spaceRepository 空间 SQLite 仓储实现
type spaceRepository struct {
	db *sql.DB
}

// NewSpaceRepository 创建空间仓储实例
func NewSpaceRepository(db *sql.DB) space.Repository {
	return &spaceRepository{db: db}
}

// Create 新增空间
func (r *spaceRepository) Create(s *space.Space) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(`
		INSERT INTO spaces (id, user_id, name, title, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.Name, s.Title, s.CreatedAt.UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err, "spaces.") {
			return space.ErrSpaceExists
		}
		return fmt.Errorf("failed to create space: %w", err)
	}
	return nil
}

// FindByName 按所有者和名称查找
func (r *spaceRepository) FindByName(userID, name string) (*space.Space, error) {
	var s space.Space
	var createdAt int64
	err := r.db.QueryRow(`
		SELECT id, user_id, name, title, created_at
		FROM spaces
		WHERE user_id = ? AND name = ?`, userID, name,
	).Scan(&s.ID, &s.UserID, &s.Name, &s.Title, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, space.ErrSpaceNotFound
		}
		return nil, fmt.Errorf("failed to query space: %w", err)
	}
	s.CreatedAt = time.UnixMilli(createdAt)
	return &s, nil
}

// ListByUser 按创建顺序列出用户的空间
func (r *spaceRepository) ListByUser(userID string) ([]*space.Space, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, name, title, created_at
		FROM spaces
		WHERE user_id = ?
		ORDER BY created_at ASC, rowid ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query spaces: %w", err)
	}
	defer rows.Close()

	result := make([]*space.Space, 0)
	for rows.Next() {
		var s space.Space
		var createdAt int64
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Title, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan space: %w", err)
		}
		s.CreatedAt = time.UnixMilli(createdAt)
		result = append(result, &s)
	}
	return result, rows.Err()
}

// 编译时检查接口实现
var _ space.Repository = (*spaceRepository)(nil)
