package config

import "github.com/google/wire"

// ProviderSet 配置 ProviderSet
// *Config 由 main 加载后传入注入器
var ProviderSet = wire.NewSet(
	NewDatabaseConfig,
	NewServerConfig,
	NewWebSocketConfig,
	NewLLMConfig,
	NewSummaryConfig,
	NewAuthConfig,
	NewMailConfig,
	NewRateLimitConfig,
	NewSchedulerConfig,
)
