package public

import (
	"errors"
	"strings"

	handlershared "github.com/unilorin-sug/election/internal/http/handlers/shared"
	"github.com/unilorin-sug/election/internal/http/response"
	"github.com/unilorin-sug/election/internal/i18n"
	"github.com/unilorin-sug/election/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCurrentStudent 当前学生信息
func (h *Handler) GetCurrentStudent(c *gin.Context) {
	studentID, ok := getStudentID(c)
	if !ok {
		return
	}
	student, err := h.StudentService.GetByID(studentID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.student_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.student_fetch_failed", err)
		return
	}
	response.Success(c, student)
}

// CastVoteRequest 投票请求
type CastVoteRequest struct {
	ElectionID      uint   `json:"election_id" binding:"required"`
	CandidateID     uint   `json:"candidate_id" binding:"required"`
	TransactionHash string `json:"transaction_hash"`
}

// CastVote 投票
func (h *Handler) CastVote(c *gin.Context) {
	studentID, ok := getStudentID(c)
	if !ok {
		return
	}
	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	locale := i18n.ResolveLocale(c)
	vote, err := h.BallotService.CastVote(c.Request.Context(), service.CastVoteInput{
		StudentID:       studentID,
		CandidateID:     req.CandidateID,
		ElectionID:      req.ElectionID,
		TransactionHash: strings.TrimSpace(req.TransactionHash),
		Locale:          locale,
	})
	if err != nil {
		respondWithMappedError(c, err, castVoteErrorRules, response.CodeInternal, "error.vote_failed")
		return
	}

	requestLog(c).Debugw("vote_request_completed", "vote_id", vote.ID, "election_id", vote.ElectionID)
	response.SuccessWithMsg(c, i18n.T(locale, "vote.cast"), vote)
}

// GetVoteStatus 当前学生在指定选举中是否已投票
func (h *Handler) GetVoteStatus(c *gin.Context) {
	studentID, ok := getStudentID(c)
	if !ok {
		return
	}
	electionID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	voted, err := h.BallotService.HasVoted(studentID, electionID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.vote_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"election_id": electionID,
		"has_voted":   voted,
	})
}
