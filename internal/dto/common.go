package dto

import "time"

// ── 通用格式 ──

const (
	// DateLayout 日期字段统一格式
	DateLayout = "2006-01-02"
	// TimestampLayout 时间戳字段统一格式（ISO-8601）
	TimestampLayout = time.RFC3339
)

// FormatDate 日期序列化为 YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatTimestamp 时间戳序列化为 UTC ISO-8601
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseDate 解析 YYYY-MM-DD 日期
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// MessageResponse 简单消息响应
type MessageResponse struct {
	Message string `json:"message"`
}
