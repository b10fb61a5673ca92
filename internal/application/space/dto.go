package space

// CreateSpaceDTO 创建空间请求
type CreateSpaceDTO struct {
	Name  string `json:"name" binding:"required,spacename"`
	Title string `json:"title" binding:"required"`
}

// SpaceDTO 空间信息
type SpaceDTO struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
}

// HeadingDTO 公开页面标题
type HeadingDTO struct {
	Username  string `json:"username"`
	SpaceName string `json:"spaceName"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
}
