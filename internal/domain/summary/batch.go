// Package summary 定义反馈摘要流的领域模型
// 包括反馈批次、客户端累积会话以及片段节奏控制
package summary

import "strings"

// promptPrefix 摘要提示词前缀
const promptPrefix = "Summarize the following feedbacks in a concise manner: "

// Batch 一次摘要请求携带的反馈文本，保持调用方给出的顺序
type Batch []string

// NewBatch 校验并创建反馈批次
// 空批次直接返回 ErrEmptyBatch，不会触发任何后端调用
func NewBatch(messages []string) (Batch, error) {
	if len(messages) == 0 {
		return nil, ErrEmptyBatch
	}
	b := make(Batch, len(messages))
	copy(b, messages)
	return b, nil
}

// Prompt 构造发送给生成模型的提示词
func (b Batch) Prompt() string {
	return promptPrefix + strings.Join(b, " ")
}

// Len 批次中的反馈条数
func (b Batch) Len() int {
	return len(b)
}
