package mail

import "github.com/google/wire"

// ProviderSet 邮件基础设施 ProviderSet
var ProviderSet = wire.NewSet(
	NewResendMailer,
)
