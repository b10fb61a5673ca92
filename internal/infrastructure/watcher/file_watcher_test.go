package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/feedify/backend/internal/domain/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcher_IsConfigFile(t *testing.T) {
	fw := NewFileWatcher("/etc/feedify/feedify.yaml", 0, nil)

	assert.True(t, fw.isConfigFile("/etc/feedify/feedify.yaml"))
	assert.True(t, fw.isConfigFile("/etc/feedify/./feedify.yaml"))
	assert.False(t, fw.isConfigFile("/etc/feedify/other.yaml"))
}

func TestFileWatcher_EmptyPathIsNoop(t *testing.T) {
	fw := NewFileWatcher("", 0, NewEventBus())
	require.NoError(t, fw.Start())
	fw.Stop()
}

func TestFileWatcher_PublishesDebouncedEvent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feedify.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0o644))

	bus := NewEventBus()
	defer bus.Close()

	var count atomic.Int32
	received := make(chan string, 4)
	bus.Subscribe(events.ConfigFileChanged, events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		count.Add(1)
		received <- event.(*events.ConfigFileEvent).Path
		return nil
	}))

	fw := NewFileWatcher(path, 100*time.Millisecond, bus)
	require.NoError(t, fw.Start())
	defer fw.Stop()

	// 连续写入应合并为一次事件
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}
	// 无关文件不触发事件
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	select {
	case got := <-received:
		assert.Equal(t, path, got)
	case <-time.After(3 * time.Second):
		t.Fatal("expected config file event")
	}

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), count.Load())
}
