package admin

import (
	"github.com/unilorin-sug/election/internal/http/response"
	"github.com/unilorin-sug/election/internal/logger"
	"github.com/unilorin-sug/election/internal/models"
	"github.com/unilorin-sug/election/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateCandidateRequest 登记候选人请求
type CreateCandidateRequest struct {
	StudentID  uint   `json:"student_id" binding:"required"`
	ElectionID uint   `json:"election_id" binding:"required"`
	Position   string `json:"position" binding:"required"`
	Manifesto  string `json:"manifesto"`
	ImageURL   string `json:"image_url"`
}

// CreateCandidate 登记候选人
func (h *Handler) CreateCandidate(c *gin.Context) {
	var req CreateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	candidate, err := h.CandidateService.AddCandidate(service.AddCandidateInput{
		StudentID:  req.StudentID,
		ElectionID: req.ElectionID,
		Position:   req.Position,
		Manifesto:  req.Manifesto,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		respondWithMappedError(c, err, candidateCreateErrorRules, response.CodeInternal, "error.candidate_create_failed")
		return
	}

	logger.Infow("admin_candidate_created",
		"username", currentUsername(c),
		"candidate_id", candidate.ID,
		"election_id", candidate.ElectionID,
		"position", candidate.Position,
	)
	h.recordAudit(c, service.AuditRecordInput{
		Action:     service.AuditActionCandidateCreate,
		TargetType: "candidate",
		TargetID:   candidate.ID,
		ElectionID: candidate.ElectionID,
		Detail:     models.JSONMap{"student_id": candidate.StudentID, "position": candidate.Position},
	})
	response.Success(c, candidate)
}
