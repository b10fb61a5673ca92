package space

// Repository 空间仓储接口
type Repository interface {
	// Create 新增空间，同名空间已存在返回 ErrSpaceExists
	Create(space *Space) error
	// FindByName 按所有者和名称查找，不存在返回 ErrSpaceNotFound
	FindByName(userID, name string) (*Space, error)
	// ListByUser 按创建顺序列出用户的空间
	ListByUser(userID string) ([]*Space, error)
}
