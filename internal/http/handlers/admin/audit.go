package admin

import (
	"strconv"
	"strings"
	"time"

	handlershared "github.com/unilorin-sug/election/internal/http/handlers/shared"
	"github.com/unilorin-sug/election/internal/http/response"
	"github.com/unilorin-sug/election/internal/logger"
	"github.com/unilorin-sug/election/internal/repository"
	"github.com/unilorin-sug/election/internal/service"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs 委员会操作审计日志
func (h *Handler) ListAuditLogs(c *gin.Context) {
	page, pageSize := handlershared.ReadPagination(c)
	filter := repository.AuditLogListFilter{
		Page:       page,
		PageSize:   pageSize,
		Action:     strings.TrimSpace(c.Query("action")),
		TargetType: strings.TrimSpace(c.Query("target_type")),
	}

	for key, target := range map[string]*uint{
		"operator_admin_id": &filter.OperatorAdminID,
		"election_id":       &filter.ElectionID,
	} {
		raw := strings.TrimSpace(c.Query(key))
		if raw == "" {
			continue
		}
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		*target = uint(value)
	}

	var err error
	if filter.CreatedFrom, err = parseTimeQuery(c, "created_from"); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if filter.CreatedTo, err = parseTimeQuery(c, "created_to"); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	items, total, err := h.AuditService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.audit_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, items, handlershared.BuildPagination(page, pageSize, total))
}

func parseTimeQuery(c *gin.Context, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// recordAudit 写入审计日志，失败只记录告警不影响主流程
func (h *Handler) recordAudit(c *gin.Context, input service.AuditRecordInput) {
	if h == nil || h.AuditService == nil {
		return
	}
	if input.OperatorAdminID == 0 {
		input.OperatorAdminID, _ = currentAdminID(c)
	}
	if input.OperatorUsername == "" {
		input.OperatorUsername = currentUsername(c)
	}
	if input.RequestID == "" {
		input.RequestID = response.RequestID(c)
	}
	if err := h.AuditService.Record(input); err != nil {
		logger.Warnw("admin_audit_record_failed",
			"error", err,
			"action", input.Action,
			"operator_admin_id", input.OperatorAdminID,
		)
	}
}
