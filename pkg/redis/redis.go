package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"clinical-eval/backend/config"
)

// Client Redis 客户端封装
// 当前用于小组报表缓存
type Client struct {
	rdb       *goredis.Client
	reportTTL time.Duration
	logger    *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, reportTTL: cfg.ReportTTL, logger: logger}, nil
}

// ── 小组报表缓存 ──

const (
	reportPrefix     = "report:group:"
	generationSuffix = ":gen"
)

func reportKey(groupID int64) string {
	return reportPrefix + strconv.FormatInt(groupID, 10)
}

func generationKey(groupID int64) string {
	return reportKey(groupID) + generationSuffix
}

// KEYS[1]=报表 KEYS[2]=代数；ARGV[1]=期望代数 ARGV[2]=报表 JSON ARGV[3]=TTL 毫秒
var setIfGenerationScript = goredis.NewScript(`
local current = redis.call("GET", KEYS[2]) or "0"
if current ~= ARGV[1] then
	return 0
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

// GetReport 读取缓存的报表 JSON，未命中时 ok=false
func (c *Client) GetReport(ctx context.Context, groupID int64) ([]byte, bool, error) {
	data, err := c.rdb.Get(ctx, reportKey(groupID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// ReportGeneration 读取小组报表的当前代数，未设置时为 0
func (c *Client) ReportGeneration(ctx context.Context, groupID int64) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey(groupID)).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetReport 代数未变化时写入报表 JSON，TTL 取自配置；返回是否写入
func (c *Client) SetReport(ctx context.Context, groupID, generation int64, data []byte) (bool, error) {
	keys := []string{reportKey(groupID), generationKey(groupID)}
	n, err := setIfGenerationScript.Run(ctx, c.rdb, keys,
		strconv.FormatInt(generation, 10), data, c.reportTTL.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// InvalidateReport 递增代数并删除小组报表缓存
func (c *Client) InvalidateReport(ctx context.Context, groupID int64) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(groupID))
		pipe.Del(ctx, reportKey(groupID))
		return nil
	})
	return err
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
