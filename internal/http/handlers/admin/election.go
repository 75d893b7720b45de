package admin

import (
	"time"

	"github.com/unilorin-sug/election/internal/http/response"
	"github.com/unilorin-sug/election/internal/logger"
	"github.com/unilorin-sug/election/internal/models"
	"github.com/unilorin-sug/election/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateElectionRequest 创建选举请求
type CreateElectionRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Positions   []string  `json:"positions" binding:"required"`
}

// CreateElection 创建选举
func (h *Handler) CreateElection(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req CreateElectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	election, err := h.ElectionService.CreateElection(service.CreateElectionInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Positions:   req.Positions,
		CreatedBy:   adminID,
	})
	if err != nil {
		respondWithMappedError(c, err, electionCreateErrorRules, response.CodeInternal, "error.election_create_failed")
		return
	}

	logger.Infow("admin_election_created",
		"admin_id", adminID,
		"username", currentUsername(c),
		"election_id", election.ID,
		"positions", len(election.Positions),
	)
	h.recordAudit(c, service.AuditRecordInput{
		OperatorAdminID: adminID,
		Action:          service.AuditActionElectionCreate,
		TargetType:      "election",
		TargetID:        election.ID,
		ElectionID:      election.ID,
		Detail:          models.JSONMap{"title": election.Title, "positions": []string(election.Positions)},
	})
	response.Success(c, election)
}
