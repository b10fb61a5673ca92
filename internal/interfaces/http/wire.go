package http

import (
	"github.com/google/wire"

	"github.com/feedify/backend/internal/interfaces/http/handler"
	"github.com/feedify/backend/internal/interfaces/http/middleware"
)

// ProviderSet HTTP 接口层 ProviderSet
var ProviderSet = wire.NewSet(
	handler.ProviderSet,
	middleware.NewRateLimiter,
	NewHandlers,
	NewServer,
)
