package feedback

import "github.com/google/wire"

// ProviderSet 反馈应用层 ProviderSet
var ProviderSet = wire.NewSet(
	NewService,
)
