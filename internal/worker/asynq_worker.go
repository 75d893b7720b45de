package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/unilorin-sug/election/internal/logger"
	"github.com/unilorin-sug/election/internal/provider"
	"github.com/unilorin-sug/election/internal/queue"
	"github.com/unilorin-sug/election/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskVoteReceiptEmail, c.handleVoteReceiptEmail)
	mux.HandleFunc(queue.TaskTallyReconcile, c.handleTallyReconcile)
}

func (c *Consumer) handleVoteReceiptEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.Container == nil {
		logger.Debugw("worker_vote_receipt_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.VoteReceiptEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_vote_receipt_unmarshal_failed", "error", err)
		return err
	}
	if payload.VoteID == 0 {
		logger.Debugw("worker_vote_receipt_skip_invalid_payload", "vote_id", payload.VoteID)
		return nil
	}
	if c.EmailService == nil || !c.EmailService.Enabled() {
		logger.Debugw("worker_vote_receipt_skip_email_disabled", "vote_id", payload.VoteID)
		return nil
	}
	if c.BallotService == nil {
		logger.Warnw("worker_vote_receipt_skip_ballot_service_nil", "vote_id", payload.VoteID)
		return nil
	}
	if err := c.BallotService.SendVoteReceipt(payload.VoteID, payload.Locale); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			logger.Debugw("worker_vote_receipt_skip_not_found", "vote_id", payload.VoteID)
			return nil
		}
		if errors.Is(err, service.ErrEmailRecipientRejected) {
			logger.Warnw("worker_vote_receipt_recipient_rejected", "vote_id", payload.VoteID, "error", err)
			return nil
		}
		logger.Warnw("worker_vote_receipt_send_failed", "vote_id", payload.VoteID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleTallyReconcile(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.Container == nil {
		logger.Debugw("worker_tally_reconcile_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.TallyReconcilePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_tally_reconcile_unmarshal_failed", "error", err)
		return err
	}
	if payload.ElectionID == 0 {
		logger.Debugw("worker_tally_reconcile_skip_invalid_payload", "election_id", payload.ElectionID)
		return nil
	}
	if c.BallotService == nil {
		logger.Warnw("worker_tally_reconcile_skip_ballot_service_nil", "election_id", payload.ElectionID)
		return nil
	}
	corrections, err := c.BallotService.ReconcileTallies(ctx, payload.ElectionID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			logger.Debugw("worker_tally_reconcile_skip_not_found", "election_id", payload.ElectionID)
			return nil
		}
		logger.Warnw("worker_tally_reconcile_failed", "election_id", payload.ElectionID, "error", err)
		return err
	}
	logger.Infow("worker_tally_reconcile_done", "election_id", payload.ElectionID, "corrections", len(corrections))
	return nil
}
