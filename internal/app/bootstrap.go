package app

import (
	"errors"
	"time"

	"github.com/unilorin-sug/election/internal/config"
	"github.com/unilorin-sug/election/internal/constants"
	"github.com/unilorin-sug/election/internal/logger"
	"github.com/unilorin-sug/election/internal/provider"
	"github.com/unilorin-sug/election/internal/router"
	"github.com/unilorin-sug/election/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	mode, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}

	container := provider.NewContainer(cfg)

	var services []Service

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		services = append(services, NewHTTPService(addr, engine))
	}

	// 初始化 Worker 服务；all 模式下队列未启用时跳过
	if mode == ModeAll || mode == ModeWorker {
		if cfg.Queue.Enabled || mode == ModeWorker {
			consumer := worker.NewConsumer(container)
			workerService, err := worker.NewService(&cfg.Queue, consumer)
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		} else {
			logger.Infow("app_worker_skipped", "reason", "queue_disabled")
		}
		// Redis 存储依赖 key 过期，数据库存储需要定时清理
		if cfg.Verification.Store != constants.VerificationStoreRedis {
			interval := time.Duration(cfg.Verification.SweepIntervalSeconds) * time.Second
			services = append(services, worker.NewSweepService(container.VerificationService, interval))
		}
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
