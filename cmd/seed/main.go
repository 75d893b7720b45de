package main

import (
	"time"

	"github.com/unilorin-sug/election/internal/config"
	"github.com/unilorin-sug/election/internal/logger"
	"github.com/unilorin-sug/election/internal/models"
	"github.com/unilorin-sug/election/internal/provider"
	"github.com/unilorin-sug/election/internal/seed"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	result, err := seed.Run(provider.NewContainer(cfg), time.Now())
	if err != nil {
		stdLog.Fatalf("Failed to seed demo election: %v", err)
	}
	if result.Skipped {
		stdLog.Printf("Demo data already present, nothing to do")
		return
	}
	stdLog.Printf("Seeded election #%d with %d students and %d candidates", result.ElectionID, result.Students, result.Candidates)
}
