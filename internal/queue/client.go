package queue

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/unilorin-sug/election/internal/config"
	"github.com/unilorin-sug/election/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 回执邮件等普通任务
	DefaultQueue = constants.QueueDefault
	// CriticalQueue 计票对账等需优先处理的任务
	CriticalQueue = constants.QueueCritical

	defaultConcurrency = 10
	// 同一选举的对账任务在该窗口内去重
	reconcileUniqueTTL = time.Minute
)

// Client 队列客户端，未启用时所有投递为空操作
type Client struct {
	inner *asynq.Client
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{inner: asynq.NewClient(RedisOpt(cfg))}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.inner != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.inner.Close()
}

// EnqueueVoteReceiptEmail 推送投票回执邮件任务
func (c *Client) EnqueueVoteReceiptEmail(payload VoteReceiptEmailPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewVoteReceiptEmailTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task, append([]asynq.Option{asynq.Queue(DefaultQueue)}, opts...)...)
}

// EnqueueTallyReconcile 推送计票对账任务，同一选举短时间内重复投递视为成功
func (c *Client) EnqueueTallyReconcile(payload TallyReconcilePayload) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewTallyReconcileTask(payload)
	if err != nil {
		return err
	}
	err = c.enqueue(task, asynq.Queue(CriticalQueue), asynq.Unique(reconcileUniqueTTL))
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

func (c *Client) enqueue(task *asynq.Task, opts ...asynq.Option) error {
	_, err := c.inner.Enqueue(task, opts...)
	return err
}

// BuildServerConfig 生成 worker 端 asynq 配置，critical 队列权重更高
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	serverCfg := asynq.Config{
		Concurrency: defaultConcurrency,
		Queues:      map[string]int{DefaultQueue: 3, CriticalQueue: 6},
	}
	if cfg != nil && cfg.Concurrency > 0 {
		serverCfg.Concurrency = cfg.Concurrency
	}
	if cfg != nil && len(cfg.Queues) > 0 {
		serverCfg.Queues = cfg.Queues
	}
	return RedisOpt(cfg), serverCfg
}

// RedisOpt 队列使用的 Redis 连接参数，缺省 127.0.0.1:6379
func RedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
