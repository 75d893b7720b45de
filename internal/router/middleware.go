package router

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/unilorin-sug/election/internal/authz"
	"github.com/unilorin-sug/election/internal/config"
	"github.com/unilorin-sug/election/internal/constants"
	"github.com/unilorin-sug/election/internal/http/response"
	"github.com/unilorin-sug/election/internal/i18n"
	"github.com/unilorin-sug/election/internal/logger"
	"github.com/unilorin-sug/election/internal/repository"
	"github.com/unilorin-sug/election/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			"X-CSRF-Token",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(response.RequestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", response.RequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

// JWTAuthMiddleware 管理员 JWT 鉴权中间件
func JWTAuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authService == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		tokenString, ok := readBearerToken(c)
		if !ok {
			return
		}

		claims, err := authService.ParseJWT(tokenString)
		if err != nil || claims.AdminID == 0 {
			abortTokenError(c, err)
			return
		}

		state, err := authService.ResolveAuthState(c.Request.Context(), claims.AdminID)
		if err != nil {
			if !errors.Is(err, service.ErrNotFound) {
				logger.Errorw("admin_auth_state_resolve_failed", "admin_id", claims.AdminID, "error", err)
			}
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		if err := service.ValidateClaims(claims, state); err != nil {
			abortUnauthorized(c, "error.token_revoked")
			return
		}

		c.Set(constants.ContextKeyAdminID, claims.AdminID)
		c.Set(constants.ContextKeyAdminUsername, claims.Username)
		c.Set(constants.ContextKeyAdminIsSuper, state.IsSuper)
		c.Next()
	}
}

// AdminRBACMiddleware 管理端 RBAC 鉴权中间件，超级管理员免校验
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("admin_rbac_service_unavailable")
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		if isSuper, ok := c.Get(constants.ContextKeyAdminIsSuper); ok {
			if superValue, typeOK := isSuper.(bool); typeOK && superValue {
				c.Next()
				return
			}
		}

		var adminID uint
		if raw, exists := c.Get(constants.ContextKeyAdminID); exists {
			if value, ok := raw.(uint); ok {
				adminID = value
			}
		}
		if adminID == 0 {
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceAdmin(adminID, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("admin_rbac_enforce_failed",
				"admin_id", adminID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		if !allowed {
			logger.Warnw("admin_rbac_permission_denied",
				"admin_id", adminID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			abortWithKey(c, response.CodeForbidden, "error.forbidden")
			return
		}

		c.Next()
	}
}

// SuperAdminMiddleware 仅允许超级管理员访问
func SuperAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isSuper, ok := c.Get(constants.ContextKeyAdminIsSuper); ok {
			if superValue, typeOK := isSuper.(bool); typeOK && superValue {
				c.Next()
				return
			}
		}
		abortWithKey(c, response.CodeForbidden, "error.forbidden")
	}
}

// StudentJWTAuthMiddleware 学生投票会话鉴权中间件，令牌仅在邮箱验证后签发
func StudentJWTAuthMiddleware(sessions *service.StudentSessionService, studentRepo repository.StudentRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions == nil || studentRepo == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		tokenString, ok := readBearerToken(c)
		if !ok {
			return
		}

		claims, err := sessions.Parse(tokenString)
		if err != nil || claims.StudentID == 0 {
			abortTokenError(c, err)
			return
		}

		student, err := studentRepo.GetByID(claims.StudentID)
		if err != nil {
			logger.Errorw("student_session_lookup_failed", "student_id", claims.StudentID, "error", err)
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		if student == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		if !student.IsVerified {
			abortUnauthorized(c, "error.student_not_verified")
			return
		}

		c.Set(constants.ContextKeyStudentID, student.ID)
		c.Set(constants.ContextKeyStudentEmail, student.Email)
		c.Next()
	}
}

func readBearerToken(c *gin.Context) (string, bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		abortUnauthorized(c, "error.auth_header_missing")
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") || strings.TrimSpace(parts[1]) == "" {
		abortUnauthorized(c, "error.auth_header_invalid")
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func abortTokenError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrTokenExpired) {
		abortUnauthorized(c, "error.token_expired")
		return
	}
	abortUnauthorized(c, "error.token_invalid")
}

func abortUnauthorized(c *gin.Context, key string) {
	abortWithKey(c, response.CodeUnauthorized, key)
}

func abortWithKey(c *gin.Context, code int, key string) {
	response.Abort(c, code, i18n.T(i18n.ResolveLocale(c), key))
}
