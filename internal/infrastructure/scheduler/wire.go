package scheduler

import "github.com/google/wire"

// ProviderSet 定时任务 ProviderSet
var ProviderSet = wire.NewSet(
	NewScheduler,
	// 注意：Purger 接口绑定在顶层 wire.go 中处理
)
