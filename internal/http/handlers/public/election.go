package public

import (
	"strings"
	"time"

	handlershared "github.com/unilorin-sug/election/internal/http/handlers/shared"
	"github.com/unilorin-sug/election/internal/http/response"
	"github.com/unilorin-sug/election/internal/models"
	"github.com/unilorin-sug/election/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListElections 选举列表，active=true 时仅返回进行中的选举
func (h *Handler) ListElections(c *gin.Context) {
	page, pageSize := handlershared.ReadPagination(c)
	filter := repository.ElectionListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
	}
	if strings.EqualFold(strings.TrimSpace(c.Query("active")), "true") {
		now := time.Now().UTC()
		filter.ActiveAt = &now
	}

	elections, total, err := h.ElectionService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.election_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, elections, handlershared.BuildPagination(page, pageSize, total))
}

// GetElection 选举详情
func (h *Handler) GetElection(c *gin.Context) {
	electionID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	election, err := h.ElectionService.GetByID(electionID)
	if err != nil {
		respondWithMappedError(c, err, electionLookupErrorRules, response.CodeInternal, "error.election_fetch_failed")
		return
	}
	response.Success(c, election)
}

// ListCandidates 选举候选人列表，可按职位过滤
func (h *Handler) ListCandidates(c *gin.Context) {
	electionID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.ElectionService.GetByID(electionID); err != nil {
		respondWithMappedError(c, err, electionLookupErrorRules, response.CodeInternal, "error.election_fetch_failed")
		return
	}

	position := strings.TrimSpace(c.Query("position"))
	var (
		candidates []models.Candidate
		err        error
	)
	if position != "" {
		candidates, err = h.CandidateService.ListByPosition(electionID, position)
	} else {
		candidates, err = h.CandidateService.ListByElection(electionID)
	}
	if err != nil {
		respondError(c, response.CodeInternal, "error.candidate_fetch_failed", err)
		return
	}
	response.Success(c, candidates)
}

// GetResults 选举计票结果
func (h *Handler) GetResults(c *gin.Context) {
	electionID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	result, err := h.ResultService.CachedResults(c.Request.Context(), electionID)
	if err != nil {
		respondWithMappedError(c, err, electionLookupErrorRules, response.CodeInternal, "error.result_fetch_failed")
		return
	}
	response.Success(c, result)
}
