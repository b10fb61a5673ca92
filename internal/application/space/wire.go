package space

import "github.com/google/wire"

// ProviderSet 空间应用层 ProviderSet
var ProviderSet = wire.NewSet(
	NewService,
)
