package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/unilorin-sug/election/internal/config"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "sug"

// shared 进程级 Redis 连接；未启用时所有读写退化为空操作
var shared = struct {
	sync.RWMutex
	client *redis.Client
	prefix string
}{prefix: defaultKeyPrefix}

// InitRedis 按配置建立全局 Redis 客户端，未启用时保持关闭状态
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		return Close()
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	client := NewClient(cfg)

	shared.Lock()
	previous := shared.client
	shared.client = client
	shared.prefix = prefix
	shared.Unlock()

	if previous != nil {
		_ = previous.Close()
	}
	return nil
}

// NewClient 按配置创建 Redis 客户端（不修改全局状态）
func NewClient(cfg *config.RedisConfig) *redis.Client {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	return redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Close 关闭全局客户端
func Close() error {
	shared.Lock()
	client := shared.client
	shared.client = nil
	shared.Unlock()
	if client == nil {
		return nil
	}
	return client.Close()
}

// Client 获取 Redis 客户端，未启用返回 nil
func Client() *redis.Client {
	shared.RLock()
	defer shared.RUnlock()
	return shared.client
}

// Enabled 判断缓存是否启用
func Enabled() bool {
	return Client() != nil
}

// Prefix 当前键前缀
func Prefix() string {
	shared.RLock()
	defer shared.RUnlock()
	return shared.prefix
}

// Ping 检查 Redis 连通性，未启用视为健康
func Ping(ctx context.Context) error {
	client := Client()
	if client == nil {
		return nil
	}
	return client.Ping(ctx).Err()
}

// GetJSON 读取 JSON 缓存，未命中返回 false
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	client := Client()
	if client == nil {
		return false, nil
	}
	raw, err := client.Get(ctx, prefixed(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 写入 JSON 缓存
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	client := Client()
	if client == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return client.Set(ctx, prefixed(key), payload, ttl).Err()
}

// Del 删除缓存
func Del(ctx context.Context, key string) error {
	client := Client()
	if client == nil {
		return nil
	}
	return client.Del(ctx, prefixed(key)).Err()
}

func prefixed(key string) string {
	return joinKey(Prefix(), key)
}

func joinKey(prefix, key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return prefix
	}
	return prefix + ":" + key
}
