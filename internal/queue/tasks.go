package queue

import (
	"encoding/json"

	"github.com/unilorin-sug/election/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskVoteReceiptEmail 投票回执邮件任务
	TaskVoteReceiptEmail = constants.TaskVoteReceiptEmail
	// TaskTallyReconcile 计票对账任务
	TaskTallyReconcile = constants.TaskTallyReconcile
)

// VoteReceiptEmailPayload 投票回执邮件任务载荷
type VoteReceiptEmailPayload struct {
	VoteID uint   `json:"vote_id"`
	Locale string `json:"locale,omitempty"`
}

// TallyReconcilePayload 计票对账任务载荷
type TallyReconcilePayload struct {
	ElectionID uint `json:"election_id"`
}

// NewVoteReceiptEmailTask 创建投票回执邮件任务
func NewVoteReceiptEmailTask(payload VoteReceiptEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVoteReceiptEmail, body, asynq.MaxRetry(5)), nil
}

// NewTallyReconcileTask 创建计票对账任务
func NewTallyReconcileTask(payload TallyReconcilePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTallyReconcile, body, asynq.MaxRetry(3)), nil
}
