package repository

import (
	"testing"
	"time"

	"github.com/unilorin-sug/election/internal/models"
)

func TestAuditLogRepositoryListFilters(t *testing.T) {
	db := openRepositoryTestDB(t, "audit_log_repo")
	repo := NewAuditLogRepository(db)

	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	logs := []models.AuditLog{
		{OperatorAdminID: 1, OperatorUsername: "chair", Action: "election.create", TargetType: "election", TargetID: 7, ElectionID: 7, CreatedAt: base},
		{OperatorAdminID: 2, OperatorUsername: "registrar", Action: "candidate.create", TargetType: "candidate", TargetID: 3, ElectionID: 7, Detail: models.JSONMap{"position": "President"}, CreatedAt: base.Add(time.Hour)},
		{OperatorAdminID: 2, OperatorUsername: "registrar", Action: "student.verify", TargetType: "student", TargetID: 11, CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range logs {
		if err := repo.Create(&logs[i]); err != nil {
			t.Fatalf("create audit log failed: %v", err)
		}
	}

	items, total, err := repo.List(AuditLogListFilter{ElectionID: 7})
	if err != nil {
		t.Fatalf("list audit logs failed: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("expected 2 election logs, got %d", total)
	}
	if items[0].Action != "candidate.create" {
		t.Fatalf("expected newest first, got %s", items[0].Action)
	}
	if items[0].Detail["position"] != "President" {
		t.Fatalf("detail not persisted: %#v", items[0].Detail)
	}

	from := base.Add(30 * time.Minute)
	items, total, err = repo.List(AuditLogListFilter{OperatorAdminID: 2, CreatedFrom: &from, Page: 1, PageSize: 1})
	if err != nil {
		t.Fatalf("list audit logs failed: %v", err)
	}
	if total != 2 || len(items) != 1 || items[0].Action != "student.verify" {
		t.Fatalf("unexpected paged result: total=%d items=%+v", total, items)
	}

	if err := repo.Create(nil); err != nil {
		t.Fatalf("nil log should be ignored: %v", err)
	}
}
