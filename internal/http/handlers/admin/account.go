package admin

import (
	"errors"

	"github.com/unilorin-sug/election/internal/http/response"
	"github.com/unilorin-sug/election/internal/i18n"
	"github.com/unilorin-sug/election/internal/models"
	"github.com/unilorin-sug/election/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateAdminRequest 创建委员会账号请求
type CreateAdminRequest struct {
	Username    string `json:"username" binding:"required"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password" binding:"required"`
	IsSuper     bool   `json:"is_super"`
}

// ListAdmins 委员会账号列表
func (h *Handler) ListAdmins(c *gin.Context) {
	admins, err := h.AdminRepo.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.admin_fetch_failed", err)
		return
	}
	response.Success(c, admins)
}

// CreateAdmin 创建委员会账号（仅超级管理员）
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	admin, err := h.AuthService.CreateAdmin(service.CreateAdminInput{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Password:    req.Password,
		IsSuper:     req.IsSuper,
	})
	if err != nil {
		if respondPasswordPolicyError(c, err) {
			return
		}
		respondWithMappedError(c, err, adminCreateErrorRules, response.CodeInternal, "error.admin_create_failed")
		return
	}

	h.recordAudit(c, service.AuditRecordInput{
		Action:     service.AuditActionAdminCreate,
		TargetType: "admin",
		TargetID:   admin.ID,
		Detail:     models.JSONMap{"username": admin.Username, "is_super": admin.IsSuper},
	})
	response.Success(c, admin)
}

func respondPasswordPolicyError(c *gin.Context, err error) bool {
	var perr *service.PasswordPolicyError
	if !errors.As(err, &perr) {
		return false
	}
	msg := i18n.Sprintf(i18n.ResolveLocale(c), perr.Key(), perr.Args()...)
	respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
	return true
}
