package main

import (
	"context"
	"errors"
	"os"

	"github.com/unilorin-sug/election/internal/config"
	"github.com/unilorin-sug/election/internal/logger"
	"github.com/unilorin-sug/election/internal/models"
	"github.com/unilorin-sug/election/internal/provider"

	"github.com/spf13/cobra"
)

const programName = "electionctl"

type configContextKey struct{}

var globalFlags = struct {
	debug      bool
	configFile string
}{}

func configFromContext(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(configContextKey{}).(*config.Config)
	return cfg
}

// openContainer 连接数据库并完成迁移后构建依赖容器
func openContainer(cmd *cobra.Command) (*provider.Container, error) {
	cfg := configFromContext(cmd.Context())
	if cfg == nil {
		return nil, errors.New("no config found in context")
	}
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, globalFlags.debug); err != nil {
		return nil, err
	}
	if err := models.AutoMigrate(); err != nil {
		return nil, err
	}
	return provider.NewContainer(cfg), nil
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Operator tooling for the SUG election service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().
		BoolVarP(&globalFlags.debug, "debug", "D", false, "enable debug logging")
	rootCmd.PersistentFlags().
		StringVar(&globalFlags.configFile, "config", "", "path to config file")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadFile(globalFlags.configFile)
		mode := cfg.Server.Mode
		if globalFlags.debug {
			mode = "debug"
		}
		logger.Init(mode, cfg.Log.ToLoggerOptions())
		cmd.SetContext(context.WithValue(cmd.Context(), configContextKey{}, cfg))
		return nil
	}

	rootCmd.AddCommand(migrateCommand())
	rootCmd.AddCommand(seedCommand())
	rootCmd.AddCommand(reconcileCommand())
	rootCmd.AddCommand(sweepCodesCommand())
	rootCmd.AddCommand(adminCommand())
	return rootCmd
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		// cobra 已输出错误信息
		os.Exit(1)
	}
}
