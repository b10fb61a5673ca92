package auth

import "github.com/google/wire"

// ProviderSet 认证基础设施 ProviderSet
var ProviderSet = wire.NewSet(
	NewTokenIssuer,
	NewBcryptHasher,
)
