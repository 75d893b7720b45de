package admin

import (
	"errors"

	"github.com/unilorin-sug/election/internal/authz"
	handlershared "github.com/unilorin-sug/election/internal/http/handlers/shared"
	"github.com/unilorin-sug/election/internal/http/response"
	"github.com/unilorin-sug/election/internal/logger"
	"github.com/unilorin-sug/election/internal/models"
	"github.com/unilorin-sug/election/internal/service"

	"github.com/gin-gonic/gin"
)

type authzSetAdminRolesPayload struct {
	Roles []string `json:"roles"`
}

// ListAuthzRoles 角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, roles)
}

// GetAuthzRole 角色详情（继承与策略）
func (h *Handler) GetAuthzRole(c *gin.Context) {
	summary, err := h.AuthzService.DescribeRole(c.Param("role"))
	if err != nil {
		if errors.Is(err, authz.ErrUnknownRole) {
			respondError(c, response.CodeNotFound, "error.role_unknown", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, summary)
}

// GetAuthzAdminRoles 查询管理员角色
func (h *Handler) GetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"admin_id": adminID, "roles": roles})
}

// SetAuthzAdminRoles 覆盖设置管理员角色
func (h *Handler) SetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req authzSetAdminRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	for _, role := range req.Roles {
		if _, err := authz.CommitteeRole(role); err != nil {
			respondError(c, response.CodeBadRequest, "error.role_unknown", err)
			return
		}
	}

	target, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_update_failed", err)
		return
	}
	if target == nil {
		respondError(c, response.CodeNotFound, "error.not_found", nil)
		return
	}

	if err := h.AuthzService.SetAdminRoles(adminID, req.Roles); err != nil {
		respondError(c, response.CodeInternal, "error.authz_update_failed", err)
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	logger.Infow("admin_authz_roles_updated",
		"operator", currentUsername(c),
		"target_admin_id", adminID,
		"roles", roles,
	)
	h.recordAudit(c, service.AuditRecordInput{
		Action:     service.AuditActionAdminRolesSet,
		TargetType: "admin",
		TargetID:   adminID,
		Detail:     models.JSONMap{"username": target.Username, "roles": roles},
	})
	response.Success(c, gin.H{"admin_id": adminID, "roles": roles})
}
