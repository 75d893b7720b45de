package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/unilorin-sug/election/internal/http/handlers/shared"
	"github.com/unilorin-sug/election/internal/http/response"
	"github.com/unilorin-sug/election/internal/models"
	"github.com/unilorin-sug/election/internal/repository"
	"github.com/unilorin-sug/election/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateStudentRequest 管理端登记学生请求
type CreateStudentRequest struct {
	MatricNumber  string `json:"matric_number" binding:"required"`
	Email         string `json:"email" binding:"required"`
	FullName      string `json:"full_name" binding:"required"`
	Faculty       string `json:"faculty"`
	Department    string `json:"department"`
	Level         string `json:"level"`
	WalletAddress string `json:"wallet_address"`
}

// CreateStudent 登记学生
func (h *Handler) CreateStudent(c *gin.Context) {
	var req CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	student, err := h.StudentService.RegisterStudent(service.RegisterStudentInput{
		MatricNumber:  req.MatricNumber,
		Email:         req.Email,
		FullName:      req.FullName,
		Faculty:       req.Faculty,
		Department:    req.Department,
		Level:         req.Level,
		WalletAddress: req.WalletAddress,
	})
	if err != nil {
		respondWithMappedError(c, err, studentCreateErrorRules, response.CodeInternal, "error.register_failed")
		return
	}
	h.recordAudit(c, service.AuditRecordInput{
		Action:     service.AuditActionStudentCreate,
		TargetType: "student",
		TargetID:   student.ID,
		Detail:     models.JSONMap{"matric_number": student.MatricNumber},
	})
	response.Success(c, student)
}

// ListStudents 学生列表
func (h *Handler) ListStudents(c *gin.Context) {
	page, pageSize := handlershared.ReadPagination(c)
	filter := repository.StudentListFilter{
		Page:       page,
		PageSize:   pageSize,
		Keyword:    strings.TrimSpace(c.Query("keyword")),
		Faculty:    strings.TrimSpace(c.Query("faculty")),
		Department: strings.TrimSpace(c.Query("department")),
		Level:      strings.TrimSpace(c.Query("level")),
	}
	if raw := strings.TrimSpace(c.Query("is_verified")); raw != "" {
		verified, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		filter.IsVerified = &verified
	}

	students, total, err := h.StudentService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.student_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, students, handlershared.BuildPagination(page, pageSize, total))
}

// VerifyStudent 手动标记学生邮箱已验证
func (h *Handler) VerifyStudent(c *gin.Context) {
	studentID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	student, err := h.StudentService.MarkVerified(studentID)
	if err != nil {
		respondWithMappedError(c, err, studentLookupErrorRules, response.CodeInternal, "error.student_verify_failed")
		return
	}
	requestLog(c).Infow("admin_student_verified", "student_id", student.ID, "username", currentUsername(c))
	h.recordAudit(c, service.AuditRecordInput{
		Action:     service.AuditActionStudentVerify,
		TargetType: "student",
		TargetID:   student.ID,
	})
	response.Success(c, student)
}
