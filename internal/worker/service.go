package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/unilorin-sug/election/internal/config"
	"github.com/unilorin-sug/election/internal/logger"
	"github.com/unilorin-sug/election/internal/queue"

	"github.com/hibiken/asynq"
)

const defaultSweepInterval = 5 * time.Minute

// Sweeper 过期数据清理
type Sweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	_ = ctx
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// SweepService 定时清理过期验证码，不依赖队列，单机部署同样运行
type SweepService struct {
	sweeper  Sweeper
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSweepService 创建清理服务
func NewSweepService(sweeper Sweeper, interval time.Duration) *SweepService {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &SweepService{sweeper: sweeper, interval: interval}
}

// Name 服务名称
func (s *SweepService) Name() string {
	return "verification_sweeper"
}

// Start 启动清理循环，ctx 取消或 Stop 调用后返回
func (s *SweepService) Start(ctx context.Context) error {
	if s == nil || s.sweeper == nil {
		return errors.New("sweeper not initialized")
	}
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.mu.Lock()
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()
	defer close(done)

	runOnce := func() {
		deleted, err := s.sweeper.SweepExpired(runCtx)
		if err != nil {
			if runCtx.Err() == nil {
				logger.Warnw("worker_verification_sweep_failed", "error", err)
			}
			return
		}
		if deleted > 0 {
			logger.Infow("worker_verification_sweep_done", "deleted", deleted)
		}
	}
	runOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-runCtx.Done():
			return nil
		case <-ticker.C:
			runOnce()
		}
	}
}

// Stop 停止清理循环并等待退出
func (s *SweepService) Stop(ctx context.Context) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
