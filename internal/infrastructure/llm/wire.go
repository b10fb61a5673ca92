package llm

import "github.com/google/wire"

// ProviderSet LLM 基础设施 ProviderSet
var ProviderSet = wire.NewSet(
	NewClient,
	NewTokenCounter,
)
