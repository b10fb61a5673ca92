package watcher

import (
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/feedify/backend/internal/domain/events"
	"github.com/feedify/backend/internal/infrastructure/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceDelay 默认防抖延迟
const DefaultDebounceDelay = 500 * time.Millisecond

// FileWatcher 配置文件监听器
// 监听配置文件所在目录（编辑器保存时常以重命名方式替换文件），
// 防抖后向事件总线发布 ConfigFileChanged 事件
type FileWatcher struct {
	path          string
	debounceDelay time.Duration
	eventBus      events.EventBus
	watcher       *fsnotify.Watcher
	logger        *slog.Logger

	debounceMu    sync.Mutex
	debounceTimer *time.Timer

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewFileWatcher 创建配置文件监听器，path 为空时 Start 不做任何事
func NewFileWatcher(path string, debounceDelay time.Duration, eventBus events.EventBus) *FileWatcher {
	if debounceDelay <= 0 {
		debounceDelay = DefaultDebounceDelay
	}
	return &FileWatcher{
		path:          path,
		debounceDelay: debounceDelay,
		eventBus:      eventBus,
		logger:        log.NewModuleLogger("watcher", "file_watcher"),
		stopCh:        make(chan struct{}),
	}
}

// Start 启动文件监听
func (fw *FileWatcher) Start() error {
	if fw.path == "" {
		fw.logger.Debug("No config file loaded, file watcher disabled")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(fw.path)); err != nil {
		watcher.Close()
		return err
	}
	fw.watcher = watcher

	fw.logger.Info("Starting config file watcher", "path", fw.path)

	fw.wg.Add(1)
	go fw.watchLoop()
	return nil
}

// Stop 停止文件监听
func (fw *FileWatcher) Stop() {
	fw.stopOnce.Do(func() {
		close(fw.stopCh)
		if fw.watcher != nil {
			fw.watcher.Close()
		}
		fw.wg.Wait()

		fw.debounceMu.Lock()
		if fw.debounceTimer != nil {
			fw.debounceTimer.Stop()
		}
		fw.debounceMu.Unlock()

		fw.logger.Info("File watcher stopped")
	})
}

// watchLoop 事件处理循环
func (fw *FileWatcher) watchLoop() {
	defer fw.wg.Done()

	for {
		select {
		case <-fw.stopCh:
			return

		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.isConfigFile(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				fw.handleConfigEvent()
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			if !errors.Is(err, fsnotify.ErrEventOverflow) {
				fw.logger.Error("File watcher error", "error", err)
			}
		}
	}
}

// isConfigFile 判断事件是否属于被监听的配置文件
func (fw *FileWatcher) isConfigFile(name string) bool {
	return filepath.Clean(name) == filepath.Clean(fw.path)
}

// handleConfigEvent 处理配置文件事件（带防抖）
func (fw *FileWatcher) handleConfigEvent() {
	fw.debounceMu.Lock()
	defer fw.debounceMu.Unlock()

	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}
	fw.debounceTimer = time.AfterFunc(fw.debounceDelay, fw.emitConfigEvent)
}

// emitConfigEvent 发布配置变更事件
func (fw *FileWatcher) emitConfigEvent() {
	select {
	case <-fw.stopCh:
		return
	default:
	}

	fw.eventBus.Publish(&events.ConfigFileEvent{
		Path:      fw.path,
		EventTime: time.Now(),
	})
	fw.logger.Debug("Config file event emitted", "path", fw.path)
}
