package summary

import "context"

// Chunk 生成流中的一个增量
// Err 非空时表示流以错误结束，之后通道关闭
type Chunk struct {
	Text string
	Err  error
}

// Generator 文本生成后端（定义在 application 层）
type Generator interface {
	// Complete 一次性返回完整文本
	Complete(ctx context.Context, prompt string) (string, error)
	// Stream 以通道形式返回增量文本，ctx 取消后生产者必须停止发送并关闭通道
	Stream(ctx context.Context, prompt string) (<-chan Chunk, error)
}

// TokenCounter 提示词 token 计数
type TokenCounter interface {
	CountTokens(text string) int
}
