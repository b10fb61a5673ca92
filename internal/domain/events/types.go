// Package events 定义领域事件类型和接口
// 用于系统内部的事件驱动通信
package events

import "time"

// EventType 事件类型标识
type EventType string

// 反馈消息相关事件类型
const (
	// MessageReceived 匿名反馈已保存
	MessageReceived EventType = "message.received"
	// MessageDeleted 反馈被所有者删除
	MessageDeleted EventType = "message.deleted"
)

// 配置相关事件类型
const (
	// ConfigFileChanged 配置文件发生变更
	ConfigFileChanged EventType = "config.file.changed"
)

// Event 领域事件接口
// 所有事件类型都必须实现此接口
type Event interface {
	// Type 返回事件类型
	Type() EventType
	// Timestamp 返回事件发生时间
	Timestamp() time.Time
}
