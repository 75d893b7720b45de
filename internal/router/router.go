package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/unilorin-sug/election/internal/cache"
	"github.com/unilorin-sug/election/internal/config"
	adminhandlers "github.com/unilorin-sug/election/internal/http/handlers/admin"
	publichandlers "github.com/unilorin-sug/election/internal/http/handlers/public"
	"github.com/unilorin-sug/election/internal/logger"
	"github.com/unilorin-sug/election/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := cache.Prefix()
	redisClient := cache.Client()
	sendCodeRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:send_code", redisPrefix),
		WindowSeconds: cfg.Security.SendCodeRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.SendCodeRateLimit.MaxAttempts,
		MessageKey:    "error.code_too_frequent",
	}
	verifyCodeRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:verify_code", redisPrefix),
		WindowSeconds: cfg.Security.VerifyRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.VerifyRateLimit.MaxAttempts,
		MessageKey:    "error.rate_limited",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	if cfg.Metrics.Enabled && c.Registry != nil {
		r.Use(MetricsMiddleware(newHTTPMetrics(c.Registry)))
	}

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		// 邮箱验证与学生登记
		auth := apiV1.Group("/auth")
		{
			auth.POST("/send-code", RateLimitMiddleware(redisClient, sendCodeRule, KeyByIPAndJSONField("email")), publicHandler.SendCode)
			auth.POST("/verify-code", RateLimitMiddleware(redisClient, verifyCodeRule, KeyByIPAndJSONField("email")), publicHandler.VerifyCode)
			auth.POST("/register", publicHandler.RegisterStudent)
		}

		// 选举查询
		apiV1.GET("/elections", publicHandler.ListElections)
		apiV1.GET("/elections/:id", publicHandler.GetElection)
		apiV1.GET("/elections/:id/candidates", publicHandler.ListCandidates)
		apiV1.GET("/elections/:id/results", publicHandler.GetResults)

		// 学生接口（需邮箱验证后签发的令牌）
		student := apiV1.Group("")
		student.Use(StudentJWTAuthMiddleware(c.StudentSessionService, c.StudentRepo))
		{
			student.GET("/me", publicHandler.GetCurrentStudent)
			student.POST("/votes", publicHandler.CastVote)
			student.GET("/elections/:id/voted", publicHandler.GetVoteStatus)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			authenticated := admin.Group("")
			authenticated.Use(JWTAuthMiddleware(c.AuthService))
			authenticated.GET("/me", adminHandler.GetAdminProfile)

			// 需要 RBAC 授权的接口
			authorized := authenticated.Group("")
			authorized.Use(AdminRBACMiddleware(c.AuthzService))
			{
				authorized.POST("/elections", adminHandler.CreateElection)
				authorized.GET("/elections/:id/votes", adminHandler.ListElectionVotes)
				authorized.POST("/elections/:id/reconcile", adminHandler.ReconcileElection)

				authorized.POST("/candidates", adminHandler.CreateCandidate)

				authorized.GET("/students", adminHandler.ListStudents)
				authorized.POST("/students", adminHandler.CreateStudent)
				authorized.POST("/students/:id/verify", adminHandler.VerifyStudent)

				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.GET("/authz/roles/:role", adminHandler.GetAuthzRole)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)

				authorized.GET("/admins", adminHandler.ListAdmins)
				authorized.GET("/audit-logs", adminHandler.ListAuditLogs)
			}

			// 角色分配仅超级管理员可操作
			super := authenticated.Group("")
			super.Use(SuperAdminMiddleware())
			super.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
			super.POST("/admins", adminHandler.CreateAdmin)
		}
	}

	// 健康检查
	r.GET("/healthz", func(ctx *gin.Context) {
		if err := cache.Ping(ctx.Request.Context()); err != nil {
			log.Warn("healthz_redis_unreachable", zap.Error(err))
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "redis": "unreachable"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Metrics.Enabled && c.Registry != nil {
		path := strings.TrimSpace(cfg.Metrics.Path)
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{Registry: c.Registry})))
	}

	return r
}
