package queue

import (
	"encoding/json"
	"testing"

	"github.com/unilorin-sug/election/internal/config"
)

func TestDisabledClientIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("disabled client should not be enabled")
	}
	if err := client.EnqueueVoteReceiptEmail(VoteReceiptEmailPayload{VoteID: 1}); err != nil {
		t.Fatalf("disabled enqueue should be noop, got %v", err)
	}
	if err := client.EnqueueTallyReconcile(TallyReconcilePayload{ElectionID: 1}); err != nil {
		t.Fatalf("disabled enqueue should be noop, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestNewTallyReconcileTaskPayload(t *testing.T) {
	task, err := NewTallyReconcileTask(TallyReconcilePayload{ElectionID: 42})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskTallyReconcile {
		t.Fatalf("unexpected task type: %s", task.Type())
	}
	var payload TallyReconcilePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("decode payload failed: %v", err)
	}
	if payload.ElectionID != 42 {
		t.Fatalf("unexpected election id: %d", payload.ElectionID)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: " redis ", Port: 6380, DB: 2})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("unexpected concurrency: %d", cfg.Concurrency)
	}
	if cfg.Queues[CriticalQueue] == 0 || cfg.Queues[DefaultQueue] == 0 {
		t.Fatalf("expected both queues configured, got %+v", cfg.Queues)
	}
}
