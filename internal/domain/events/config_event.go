package events

import "time"

// ConfigFileEvent 配置文件变更事件
type ConfigFileEvent struct {
	// Path 配置文件绝对路径
	Path string
	// EventTime 事件发生时间
	EventTime time.Time
}

// Type 实现 Event 接口
func (e *ConfigFileEvent) Type() EventType {
	return ConfigFileChanged
}

// Timestamp 实现 Event 接口
func (e *ConfigFileEvent) Timestamp() time.Time {
	return e.EventTime
}
