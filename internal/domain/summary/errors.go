package summary

import "errors"

var (
	// ErrEmptyBatch 反馈批次为空（输入错误）
	ErrEmptyBatch = errors.New("feedback batch is empty")
	// ErrBatchTooLarge 提示词超过 token 上限（输入错误）
	ErrBatchTooLarge = errors.New("feedback batch exceeds prompt token limit")
	// ErrUnauthenticated 调用方未认证
	ErrUnauthenticated = errors.New("caller is not authenticated")
	// ErrBackendTimeout 等待下一个片段超时
	ErrBackendTimeout = errors.New("timed out waiting for next summary fragment")
	// ErrSessionBusy 会话正在接收片段
	ErrSessionBusy = errors.New("summary session is already streaming")
	// ErrSessionNotStreaming 会话不在接收状态
	ErrSessionNotStreaming = errors.New("summary session is not streaming")
)

// BackendError 生成后端调用失败
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string {
	return "summary backend: " + e.Err.Error()
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// IsBackendError 判断错误是否来自生成后端
func IsBackendError(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}

// IsInputError 判断错误是否为调用方输入问题
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyBatch) || errors.Is(err, ErrBatchTooLarge)
}
