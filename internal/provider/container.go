package provider

import (
	"github.com/unilorin-sug/election/internal/authz"
	"github.com/unilorin-sug/election/internal/cache"
	"github.com/unilorin-sug/election/internal/config"
	"github.com/unilorin-sug/election/internal/constants"
	"github.com/unilorin-sug/election/internal/logger"
	"github.com/unilorin-sug/election/internal/models"
	"github.com/unilorin-sug/election/internal/queue"
	"github.com/unilorin-sug/election/internal/repository"
	"github.com/unilorin-sug/election/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	QueueClient *queue.Client
	Registry    *prometheus.Registry
	Metrics     *service.ElectionMetrics

	// Repositories
	AdminRepo            repository.AdminRepository
	StudentRepo          repository.StudentRepository
	ElectionRepo         repository.ElectionRepository
	CandidateRepo        repository.CandidateRepository
	VoteRepo             repository.VoteRepository
	VerificationCodeRepo repository.VerificationCodeRepository
	AuditLogRepo         repository.AuditLogRepository

	// Services
	AuthzService          *authz.Service
	AuditService          *service.AuditService
	AuthService           *service.AuthService
	StudentSessionService *service.StudentSessionService
	EmailService          *service.EmailService
	CaptchaService        *service.CaptchaService
	VerificationService   *service.VerificationService
	StudentService        *service.StudentService
	ElectionService       *service.ElectionService
	CandidateService      *service.CandidateService
	BallotService         *service.BallotService
	ResultService         *service.ResultService
}

// NewContainer 初始化容器（使用全局数据库连接）
func NewContainer(cfg *config.Config) *Container {
	return NewContainerWithDB(cfg, models.DB)
}

// NewContainerWithDB 使用指定数据库连接初始化容器
func NewContainerWithDB(cfg *config.Config, db *gorm.DB) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &Container{
		Config:      cfg,
		DB:          db,
		QueueClient: queueClient,
		Registry:    registry,
		Metrics:     service.NewElectionMetrics(registry),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := c.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.StudentRepo = repository.NewStudentRepository(db)
	c.ElectionRepo = repository.NewElectionRepository(db)
	c.CandidateRepo = repository.NewCandidateRepository(db)
	c.VoteRepo = repository.NewVoteRepository(db)
	c.VerificationCodeRepo = repository.NewVerificationCodeRepository(db)
	c.AuditLogRepo = repository.NewAuditLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(c.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuditService = service.NewAuditService(c.AuditLogRepo)
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.StudentSessionService = service.NewStudentSessionService(c.Config.StudentJWT)
	c.VerificationService = service.NewVerificationService(c.buildVerificationStore(), c.EmailService, c.Config.Verification, c.Metrics)
	c.StudentService = service.NewStudentService(c.StudentRepo, c.VerificationService, c.Metrics)
	c.ElectionService = service.NewElectionService(c.ElectionRepo)
	c.CandidateService = service.NewCandidateService(c.CandidateRepo, c.StudentRepo, c.ElectionRepo)
	c.BallotService = service.NewBallotService(
		c.VoteRepo,
		c.CandidateRepo,
		c.StudentRepo,
		c.ElectionRepo,
		c.QueueClient,
		c.EmailService,
		c.Metrics,
	)
	c.ResultService = service.NewResultService(c.ElectionRepo, c.CandidateRepo, c.VoteRepo)
}

// buildVerificationStore 按配置选择验证码存储，Redis 不可用时回退数据库
func (c *Container) buildVerificationStore() service.VerificationCodeStore {
	if c.Config.Verification.Store == constants.VerificationStoreRedis {
		if client := cache.Client(); client != nil {
			return cache.NewRedisVerificationCodeStore(client, cache.Prefix())
		}
		logger.Warnw("provider_verification_store_fallback",
			"configured", constants.VerificationStoreRedis,
			"using", constants.VerificationStoreDatabase,
			"reason", "redis_unavailable",
		)
	}
	return service.NewDatabaseVerificationCodeStore(c.VerificationCodeRepo)
}
