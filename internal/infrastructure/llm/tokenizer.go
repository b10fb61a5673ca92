package llm

import (
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"

	"github.com/feedify/backend/internal/application/summary"
	"github.com/feedify/backend/internal/infrastructure/log"
)

// 在包初始化时设置离线加载器
func init() {
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// TokenCounter 使用 tiktoken 计算提示词 token 数
// 编码加载失败时退化为按字符估算
type TokenCounter struct {
	encoding *tiktoken.Tiktoken
	mu       sync.Mutex
}

var (
	counterInstance *TokenCounter
	counterOnce     sync.Once
)

// NewTokenCounter 获取 TokenCounter 单例，避免重复加载编码文件
func NewTokenCounter() *TokenCounter {
	counterOnce.Do(func() {
		counterInstance = &TokenCounter{}
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			log.NewModuleLogger("llm", "tokenizer").Warn("Failed to load tiktoken encoding, falling back to estimation",
				slog.String("error", err.Error()),
			)
			return
		}
		counterInstance.encoding = enc
	})
	return counterInstance
}

// CountTokens 计算文本的 token 数
func (c *TokenCounter) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	if c.encoding == nil {
		return estimateTokens(text)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.encoding.Encode(text, nil, nil))
}

// estimateTokens 粗略估算：约 4 个字符一个 token
func estimateTokens(text string) int {
	return (utf8.RuneCountInString(text) + 3) / 4
}

// 编译时检查接口实现
var _ summary.TokenCounter = (*TokenCounter)(nil)
