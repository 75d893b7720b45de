package cache

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// 键保留时长在过期时间之后再延长一段，校验仍以存储的 expires_at 为准
const verificationKeyGrace = time.Minute

// 字段: code / expires_at(毫秒)；仅当验证码一致且未过期时删除
var consumeVerificationCodeScript = redis.NewScript(`
local code = redis.call("HGET", KEYS[1], "code")
if not code then
	return 0
end
local expiresAt = tonumber(redis.call("HGET", KEYS[1], "expires_at") or "0")
if code ~= ARGV[1] or expiresAt <= tonumber(ARGV[2]) then
	return 0
end
redis.call("DEL", KEYS[1])
return 1
`)

// RedisVerificationCodeStore 基于 Redis 的邮箱验证码存储
type RedisVerificationCodeStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisVerificationCodeStore 创建 Redis 验证码存储
func NewRedisVerificationCodeStore(client redis.Cmdable, prefix string) *RedisVerificationCodeStore {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisVerificationCodeStore{client: client, prefix: prefix}
}

func (s *RedisVerificationCodeStore) key(email string) string {
	return joinKey(s.prefix, "verify_code:"+email)
}

// Save 写入验证码，覆盖同一邮箱的旧验证码
func (s *RedisVerificationCodeStore) Save(ctx context.Context, email, code string, expiresAt, now time.Time) error {
	key := s.key(email)
	ttl := expiresAt.Sub(now) + verificationKeyGrace
	if ttl <= 0 {
		ttl = verificationKeyGrace
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, "code", code, "expires_at", expiresAt.UnixMilli())
		pipe.PExpire(ctx, key, ttl)
		return nil
	})
	return err
}

// Consume 原子比较并删除验证码
func (s *RedisVerificationCodeStore) Consume(ctx context.Context, email, code string, now time.Time) (bool, error) {
	result, err := consumeVerificationCodeScript.Run(ctx, s.client, []string{s.key(email)}, code, now.UnixMilli()).Int64()
	if err != nil {
		return false, err
	}
	return result == 1, nil
}

// SweepExpired Redis 依赖键过期自动清理
func (s *RedisVerificationCodeStore) SweepExpired(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}
