package observability

import (
	"errors"
	"testing"

	"clinical-eval/backend/config"
)

func TestInitSentry_Disabled(t *testing.T) {
	flush, err := InitSentry(&config.SentryConfig{})
	if err != nil {
		t.Fatalf("DSN 为空时不应报错: %v", err)
	}
	flush()

	// 未初始化客户端时上报应为空操作
	CaptureErr(errors.New("boom"))
	CaptureErr(nil)
}

func TestInitSentry_InvalidDSN(t *testing.T) {
	if _, err := InitSentry(&config.SentryConfig{DSN: "not a dsn"}); err == nil {
		t.Error("非法 DSN 应返回错误")
	}
}
