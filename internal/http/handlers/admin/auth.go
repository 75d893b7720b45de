package admin

import (
	"time"

	"github.com/unilorin-sug/election/internal/constants"
	"github.com/unilorin-sug/election/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AdminLoginRequest 管理员登录请求
type AdminLoginRequest struct {
	Username       string                `json:"username" binding:"required"`
	Password       string                `json:"password" binding:"required"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if h.CaptchaService != nil {
		if err := h.CaptchaService.Verify(constants.CaptchaSceneAdminLogin, req.CaptchaPayload.ToServicePayload()); err != nil {
			respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "error.captcha_verify_failed")
			return
		}
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		requestLog(c).Infow("admin_login_failed", "username", req.Username, "client_ip", c.ClientIP())
		respondWithMappedError(c, err, adminLoginErrorRules, response.CodeInternal, "error.login_failed")
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
		"user": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
			"is_super": admin.IsSuper,
		},
	})
}

// GetAdminProfile 当前管理员信息与角色
func (h *Handler) GetAdminProfile(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	admin, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.admin_fetch_failed", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "error.not_found", nil)
		return
	}

	roles := []string{}
	if h.AuthzService != nil {
		roles, err = h.AuthzService.GetAdminRoles(admin.ID)
		if err != nil {
			respondError(c, response.CodeInternal, "error.admin_fetch_failed", err)
			return
		}
	}

	response.Success(c, gin.H{
		"admin": admin,
		"roles": roles,
	})
}
