package summary

import (
	"context"
	"errors"
	"io"
	"unicode/utf8"

	domainSummary "github.com/feedify/backend/internal/domain/summary"
)

// readBufferSize 单次读取的最大字节数
const readBufferSize = 4096

// Accumulate 读取无分隔的摘要响应体，按到达顺序把片段追加到会话
// 片段之间按 pacer 停顿；EOF 时会话标记完成，读取错误时标记失败并保留已渲染的片段。
// 读取边界上不完整的 UTF-8 序列会留到下一个片段，保证每个片段都是合法文本。
func Accumulate(
	ctx context.Context,
	body io.Reader,
	session *domainSummary.Session,
	pacer domainSummary.Pacer,
	onFragment func(string),
) error {
	if pacer == nil {
		pacer = domainSummary.NoPacer{}
	}
	if err := session.Begin(); err != nil {
		return err
	}

	buf := make([]byte, readBufferSize)
	var pending []byte
	rendered := 0

	deliver := func(fragment string) error {
		if rendered > 0 {
			if err := pacer.Pause(ctx); err != nil {
				return err
			}
		}
		if err := session.Append(fragment); err != nil {
			return err
		}
		rendered++
		if onFragment != nil {
			onFragment(fragment)
		}
		return nil
	}

	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			data := append(pending, buf[:n]...)
			cut := completeUTF8Prefix(data)
			pending = append([]byte(nil), data[cut:]...)
			if cut > 0 {
				if err := deliver(string(data[:cut])); err != nil {
					return fail(session, err)
				}
			}
		}

		if errors.Is(readErr, io.EOF) {
			if len(pending) > 0 {
				if err := deliver(string(pending)); err != nil {
					return fail(session, err)
				}
			}
			session.Complete()
			return nil
		}
		if readErr != nil {
			return fail(session, readErr)
		}
	}
}

// fail 标记会话失败；会话已被清空时直接返回错误
func fail(session *domainSummary.Session, err error) error {
	if errors.Is(err, domainSummary.ErrSessionNotStreaming) {
		return err
	}
	session.Fail(err)
	return err
}

// completeUTF8Prefix 返回 b 中以完整字符结尾的最长前缀长度
func completeUTF8Prefix(b []byte) int {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if utf8.FullRune(b[i:]) {
				return len(b)
			}
			return i
		}
	}
	return len(b)
}
