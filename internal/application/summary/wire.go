package summary

import "github.com/google/wire"

// ProviderSet 摘要应用层 ProviderSet
var ProviderSet = wire.NewSet(
	NewRelay,
	// 注意：Generator / TokenCounter 接口绑定在顶层 wire.go 中处理
)
