package account

import "github.com/google/wire"

// ProviderSet 账户应用层 ProviderSet
var ProviderSet = wire.NewSet(
	NewService,
	// 注意：Mailer / PasswordHasher / TokenIssuer 接口绑定在顶层 wire.go 中处理
)
