package infrastructure

import (
	"github.com/feedify/backend/internal/infrastructure/auth"
	"github.com/feedify/backend/internal/infrastructure/config"
	"github.com/feedify/backend/internal/infrastructure/llm"
	"github.com/feedify/backend/internal/infrastructure/mail"
	"github.com/feedify/backend/internal/infrastructure/notification"
	"github.com/feedify/backend/internal/infrastructure/scheduler"
	"github.com/feedify/backend/internal/infrastructure/storage"
	"github.com/feedify/backend/internal/infrastructure/watcher"
	"github.com/feedify/backend/internal/infrastructure/websocket"
	"github.com/google/wire"
)

// ProviderSet Infrastructure 层总 ProviderSet
var ProviderSet = wire.NewSet(
	config.ProviderSet,
	watcher.ProviderSet,
	websocket.ProviderSet,
	notification.ProviderSet,
	storage.ProviderSet,
	llm.ProviderSet,
	auth.ProviderSet,
	mail.ProviderSet,
	scheduler.ProviderSet,
)
