package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/unilorin-sug/election/internal/http/handlers/shared"
	"github.com/unilorin-sug/election/internal/http/response"
	"github.com/unilorin-sug/election/internal/models"
	"github.com/unilorin-sug/election/internal/queue"
	"github.com/unilorin-sug/election/internal/repository"
	"github.com/unilorin-sug/election/internal/service"

	"github.com/gin-gonic/gin"
)

// ListElectionVotes 选举选票明细
func (h *Handler) ListElectionVotes(c *gin.Context) {
	electionID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.ElectionService.GetByID(electionID); err != nil {
		respondWithMappedError(c, err, electionLookupErrorRules, response.CodeInternal, "error.election_fetch_failed")
		return
	}

	page, pageSize := handlershared.ReadPagination(c)
	filter := repository.VoteListFilter{
		Page:       page,
		PageSize:   pageSize,
		ElectionID: electionID,
	}
	if raw := strings.TrimSpace(c.Query("candidate_id")); raw != "" {
		candidateID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		filter.CandidateID = uint(candidateID)
	}

	votes, total, err := h.BallotService.ListVotes(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.vote_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, votes, handlershared.BuildPagination(page, pageSize, total))
}

// ReconcileElection 按选票重算候选人计票；async=true 且队列可用时投递异步任务
func (h *Handler) ReconcileElection(c *gin.Context) {
	electionID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	async := strings.EqualFold(strings.TrimSpace(c.Query("async")), "true")
	if async && h.QueueClient != nil && h.QueueClient.Enabled() {
		if _, err := h.ElectionService.GetByID(electionID); err != nil {
			respondWithMappedError(c, err, electionLookupErrorRules, response.CodeInternal, "error.election_fetch_failed")
			return
		}
		if err := h.QueueClient.EnqueueTallyReconcile(queue.TallyReconcilePayload{ElectionID: electionID}); err != nil {
			respondError(c, response.CodeInternal, "error.queue_unavailable", err)
			return
		}
		h.recordAudit(c, service.AuditRecordInput{
			Action:     service.AuditActionTallyReconcile,
			TargetType: "election",
			TargetID:   electionID,
			ElectionID: electionID,
			Detail:     models.JSONMap{"async": true},
		})
		response.Success(c, gin.H{"queued": true, "election_id": electionID})
		return
	}

	corrections, err := h.BallotService.ReconcileTallies(c.Request.Context(), electionID)
	if err != nil {
		respondWithMappedError(c, err, electionLookupErrorRules, response.CodeInternal, "error.reconcile_failed")
		return
	}
	h.recordAudit(c, service.AuditRecordInput{
		Action:     service.AuditActionTallyReconcile,
		TargetType: "election",
		TargetID:   electionID,
		ElectionID: electionID,
		Detail:     models.JSONMap{"async": false, "corrections": len(corrections)},
	})
	response.Success(c, gin.H{
		"election_id": electionID,
		"corrections": corrections,
	})
}
