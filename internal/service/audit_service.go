package service

import (
	"strings"
	"time"

	"github.com/unilorin-sug/election/internal/models"
	"github.com/unilorin-sug/election/internal/repository"
)

// 审计动作常量
const (
	AuditActionElectionCreate  = "election.create"
	AuditActionCandidateCreate = "candidate.create"
	AuditActionStudentCreate   = "student.create"
	AuditActionStudentVerify   = "student.verify"
	AuditActionTallyReconcile  = "tally.reconcile"
	AuditActionAdminRolesSet   = "admin.roles.set"
	AuditActionAdminCreate     = "admin.create"
)

// AuditRecordInput 审计记录输入
type AuditRecordInput struct {
	OperatorAdminID  uint
	OperatorUsername string
	Action           string
	TargetType       string
	TargetID         uint
	ElectionID       uint
	RequestID        string
	Detail           models.JSONMap
}

// AuditService 委员会操作审计服务
type AuditService struct {
	repo    repository.AuditLogRepository
	nowFunc func() time.Time
}

// NewAuditService 创建审计服务
func NewAuditService(repo repository.AuditLogRepository) *AuditService {
	return &AuditService{repo: repo, nowFunc: time.Now}
}

// Record 写入审计日志，缺少操作人或动作时忽略
func (s *AuditService) Record(input AuditRecordInput) error {
	if s == nil || s.repo == nil {
		return nil
	}
	action := strings.TrimSpace(input.Action)
	if input.OperatorAdminID == 0 || action == "" {
		return nil
	}
	return s.repo.Create(&models.AuditLog{
		OperatorAdminID:  input.OperatorAdminID,
		OperatorUsername: strings.TrimSpace(input.OperatorUsername),
		Action:           action,
		TargetType:       strings.TrimSpace(input.TargetType),
		TargetID:         input.TargetID,
		ElectionID:       input.ElectionID,
		RequestID:        strings.TrimSpace(input.RequestID),
		Detail:           input.Detail,
		CreatedAt:        s.nowFunc().UTC(),
	})
}

// List 查询审计日志
func (s *AuditService) List(filter repository.AuditLogListFilter) ([]models.AuditLog, int64, error) {
	if s == nil || s.repo == nil {
		return []models.AuditLog{}, 0, nil
	}
	return s.repo.List(filter)
}
