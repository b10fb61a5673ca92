package storage

import "github.com/google/wire"

// ProviderSet Storage 基础设施层 ProviderSet
var ProviderSet = wire.NewSet(
	ProvideDB,                   // 提供数据库连接
	NewUserRepository,           // 用户仓储
	NewSpaceRepository,          // 空间仓储
	NewMessageRepository,        // 反馈消息仓储
	NewPublicFeedbackRepository, // 公开反馈仓储
)
