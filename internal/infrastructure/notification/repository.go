package notification

import (
	"sync"

	"github.com/feedify/backend/internal/domain/notification"
)

// DefaultPerUserLimit 每个用户保留的通知条数
const DefaultPerUserLimit = 50

// MemoryRepository 内存仓储实现，每个用户只保留最近的若干条
type MemoryRepository struct {
	mu      sync.RWMutex
	perUser int
	// 按时间正序保存
	items map[string][]*notification.Notification
}

// NewMemoryRepository 创建内存仓储
func NewMemoryRepository() *MemoryRepository {
	return NewMemoryRepositoryWithLimit(DefaultPerUserLimit)
}

// NewMemoryRepositoryWithLimit 创建指定容量的内存仓储
func NewMemoryRepositoryWithLimit(perUser int) *MemoryRepository {
	if perUser <= 0 {
		perUser = DefaultPerUserLimit
	}
	return &MemoryRepository{
		perUser: perUser,
		items:   make(map[string][]*notification.Notification),
	}
}

// Save 保存通知，超出容量时丢弃最旧的
func (r *MemoryRepository) Save(n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := append(r.items[n.UserID], n)
	if len(list) > r.perUser {
		list = append([]*notification.Notification(nil), list[len(list)-r.perUser:]...)
	}
	r.items[n.UserID] = list
	return nil
}

// ListByUser 按时间倒序返回用户的通知
func (r *MemoryRepository) ListByUser(userID string, limit int) ([]*notification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.items[userID]
	n := len(list)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]*notification.Notification, 0, n)
	for i := len(list) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, list[i])
	}
	return result, nil
}

// 编译时检查接口实现
var _ notification.Repository = (*MemoryRepository)(nil)
