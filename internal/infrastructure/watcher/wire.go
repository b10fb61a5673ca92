package watcher

import (
	"github.com/feedify/backend/internal/domain/events"
	"github.com/feedify/backend/internal/infrastructure/config"
	"github.com/google/wire"
)

// ProvideEventBus 提供事件总线实例
func ProvideEventBus() events.EventBus {
	return NewEventBus()
}

// ProvideFileWatcher 提供配置文件监听器实例
func ProvideFileWatcher(cfg *config.Config, eventBus events.EventBus) *FileWatcher {
	return NewFileWatcher(cfg.File, DefaultDebounceDelay, eventBus)
}

// ProviderSet 监听与事件分发 ProviderSet
var ProviderSet = wire.NewSet(
	ProvideEventBus,
	ProvideFileWatcher,
)
