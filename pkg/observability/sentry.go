package observability

import (
	"time"

	"github.com/getsentry/sentry-go"

	"clinical-eval/backend/config"
)

// InitSentry 初始化 Sentry 上报；DSN 为空时不启用，返回的 flush 函数可直接 defer
func InitSentry(cfg *config.SentryConfig) (func(), error) {
	if cfg.DSN == "" {
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
	}); err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureErr 上报非预期错误；未初始化时为空操作
func CaptureErr(err error) {
	if err != nil {
		sentry.CaptureException(err)
	}
}
