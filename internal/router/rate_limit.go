package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/unilorin-sug/election/internal/http/response"
	"github.com/unilorin-sug/election/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const memoryLimiterMaxKeys = 10000

var errRateLimitReply = errors.New("unexpected rate limit script reply")

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
}

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RateLimitMiddleware 频率限制中间件，未启用 Redis 时退化为进程内令牌桶
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	if rule.WindowSeconds <= 0 || rule.MaxRequests <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if client == nil {
		return memoryRateLimitMiddleware(newMemoryLimiter(rule), rule, keyFunc)
	}
	return func(c *gin.Context) {
		key := resolveRateLimitKey(c, rule, keyFunc)

		count, ttlSeconds, err := incrWindow(c, client, key, rule.WindowSeconds)
		if err != nil {
			abortWithKey(c, response.CodeInternal, "error.rate_limit_unavailable")
			return
		}
		if count > int64(rule.MaxRequests) {
			waitSeconds := int(ttlSeconds)
			if waitSeconds < 1 {
				waitSeconds = rule.WindowSeconds
			}
			if waitSeconds < 1 {
				waitSeconds = 1
			}
			abortRateLimited(c, rule, waitSeconds)
			return
		}

		c.Next()
	}
}

func memoryRateLimitMiddleware(limiter *memoryLimiter, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := resolveRateLimitKey(c, rule, keyFunc)
		reservation := limiter.get(key).Reserve()
		if !reservation.OK() {
			abortRateLimited(c, rule, rule.WindowSeconds)
			return
		}
		if delay := reservation.Delay(); delay > 0 {
			reservation.Cancel()
			abortRateLimited(c, rule, int(math.Ceil(delay.Seconds())))
			return
		}
		c.Next()
	}
}

func resolveRateLimitKey(c *gin.Context, rule RateLimitRule, keyFunc RateLimitKeyFunc) string {
	key := ""
	if keyFunc != nil {
		key = strings.TrimSpace(keyFunc(c))
	}
	if key == "" {
		key = c.ClientIP()
	}
	if rule.Prefix != "" {
		key = fmt.Sprintf("%s:%s", rule.Prefix, key)
	}
	return key
}

func abortRateLimited(c *gin.Context, rule RateLimitRule, waitSeconds int) {
	if waitSeconds < 1 {
		waitSeconds = 1
	}
	msgKey := strings.TrimSpace(rule.MessageKey)
	if msgKey == "" {
		msgKey = "error.rate_limited"
	}
	response.Abort(c, response.CodeTooManyRequests, i18n.Sprintf(i18n.ResolveLocale(c), msgKey, waitSeconds))
}

// incrWindow 固定窗口计数，返回当前次数与剩余秒数
func incrWindow(c *gin.Context, client *redis.Client, key string, windowSeconds int) (int64, int64, error) {
	result, err := rateLimitScript.Run(c.Request.Context(), client, []string{key}, windowSeconds).Result()
	if err != nil {
		return 0, 0, err
	}
	values, ok := result.([]interface{})
	if !ok || len(values) < 2 {
		return 0, 0, errRateLimitReply
	}
	count, ok := toInt64(values[0])
	if !ok {
		return 0, 0, errRateLimitReply
	}
	ttl, _ := toInt64(values[1])
	return count, ttl, nil
}

// memoryLimiter 按 key 维护令牌桶，窗口内最多放行 MaxRequests 次
type memoryLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
	burst    int
}

func newMemoryLimiter(rule RateLimitRule) *memoryLimiter {
	window := time.Duration(rule.WindowSeconds) * time.Second
	return &memoryLimiter{
		limiters: make(map[string]*rate.Limiter),
		every:    rate.Every(window / time.Duration(rule.MaxRequests)),
		burst:    rule.MaxRequests,
	}
}

func (m *memoryLimiter) get(key string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limiter, ok := m.limiters[key]; ok {
		return limiter
	}
	if len(m.limiters) >= memoryLimiterMaxKeys {
		m.limiters = make(map[string]*rate.Limiter)
	}
	limiter := rate.NewLimiter(m.every, m.burst)
	m.limiters[key] = limiter
	return limiter
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 使用 IP + JSON 字段作为限流 key
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(strings.TrimSpace(readJSONField(c, field)))
		if value == "" {
			return c.ClientIP()
		}
		return fmt.Sprintf("%s|%s", value, c.ClientIP())
	}
}

func readJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) == 0 {
		return ""
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	value, ok := payload[field]
	if !ok {
		return ""
	}
	if text, ok := value.(string); ok {
		return strings.TrimSpace(text)
	}
	return ""
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
