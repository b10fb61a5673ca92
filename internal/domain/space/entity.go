// Package space 定义反馈空间领域模型
package space

import "time"

// Space 反馈空间，归属于一个用户
type Space struct {
	ID     string
	UserID string
	// Name 空间名，同一用户下唯一，出现在公开链接中
	Name string
	// Title 公开页面展示的标题
	Title     string
	CreatedAt time.Time
}
