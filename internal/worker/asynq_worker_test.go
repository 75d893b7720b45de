package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/unilorin-sug/election/internal/config"
	"github.com/unilorin-sug/election/internal/models"
	"github.com/unilorin-sug/election/internal/provider"
	"github.com/unilorin-sug/election/internal/queue"
	"github.com/unilorin-sug/election/internal/repository"
	"github.com/unilorin-sug/election/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupWorkerTestContainer(t *testing.T) (*provider.Container, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateDB(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	voteRepo := repository.NewVoteRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	electionRepo := repository.NewElectionRepository(db)
	emailService := service.NewEmailService(&config.EmailConfig{Enabled: false})
	return &provider.Container{
		DB:            db,
		VoteRepo:      voteRepo,
		CandidateRepo: candidateRepo,
		EmailService:  emailService,
		BallotService: service.NewBallotService(voteRepo, candidateRepo, studentRepo, electionRepo, nil, emailService, nil),
	}, db
}

func mustTask(t *testing.T, taskType string, payload interface{}) *asynq.Task {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	return asynq.NewTask(taskType, body)
}

func TestHandleVoteReceiptEmailSkipsWhenEmailDisabled(t *testing.T) {
	container, _ := setupWorkerTestContainer(t)
	consumer := NewConsumer(container)

	task := mustTask(t, queue.TaskVoteReceiptEmail, queue.VoteReceiptEmailPayload{VoteID: 12})
	if err := consumer.handleVoteReceiptEmail(context.Background(), task); err != nil {
		t.Fatalf("disabled email should skip without error: %v", err)
	}
}

func TestHandleVoteReceiptEmailRejectsBadPayload(t *testing.T) {
	container, _ := setupWorkerTestContainer(t)
	consumer := NewConsumer(container)

	bad := asynq.NewTask(queue.TaskVoteReceiptEmail, []byte("{not json"))
	if err := consumer.handleVoteReceiptEmail(context.Background(), bad); err == nil {
		t.Fatalf("expected unmarshal error for malformed payload")
	}
	empty := mustTask(t, queue.TaskVoteReceiptEmail, queue.VoteReceiptEmailPayload{})
	if err := consumer.handleVoteReceiptEmail(context.Background(), empty); err != nil {
		t.Fatalf("zero vote id should be skipped: %v", err)
	}
}

func TestHandleTallyReconcileRepairsDrift(t *testing.T) {
	container, db := setupWorkerTestContainer(t)
	consumer := NewConsumer(container)

	now := time.Now().UTC()
	election := &models.Election{
		Title:     "Hall Rep",
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(time.Hour),
		Positions: models.StringArray{"Representative"},
	}
	if err := db.Create(election).Error; err != nil {
		t.Fatalf("create election failed: %v", err)
	}
	runner := &models.Student{MatricNumber: "19/11AB001", Email: "runner@students.unilorin.edu.ng", FullName: "Runner"}
	voter := &models.Student{MatricNumber: "19/11AB002", Email: "voter@students.unilorin.edu.ng", FullName: "Voter"}
	if err := db.Create(runner).Error; err != nil {
		t.Fatalf("create runner failed: %v", err)
	}
	if err := db.Create(voter).Error; err != nil {
		t.Fatalf("create voter failed: %v", err)
	}
	candidate := &models.Candidate{StudentID: runner.ID, ElectionID: election.ID, Position: "Representative", VoteCount: 5}
	if err := db.Omit("Student").Create(candidate).Error; err != nil {
		t.Fatalf("create candidate failed: %v", err)
	}
	vote := &models.Vote{StudentID: voter.ID, ElectionID: election.ID, CandidateID: candidate.ID, Timestamp: now}
	if err := db.Create(vote).Error; err != nil {
		t.Fatalf("create vote failed: %v", err)
	}

	task := mustTask(t, queue.TaskTallyReconcile, queue.TallyReconcilePayload{ElectionID: election.ID})
	if err := consumer.handleTallyReconcile(context.Background(), task); err != nil {
		t.Fatalf("reconcile task failed: %v", err)
	}
	reloaded, err := container.CandidateRepo.GetByID(candidate.ID)
	if err != nil {
		t.Fatalf("reload candidate failed: %v", err)
	}
	if reloaded.VoteCount != 1 {
		t.Fatalf("expected tally repaired to 1, got %d", reloaded.VoteCount)
	}

	missing := mustTask(t, queue.TaskTallyReconcile, queue.TallyReconcilePayload{ElectionID: 4040})
	if err := consumer.handleTallyReconcile(context.Background(), missing); err != nil {
		t.Fatalf("unknown election should be skipped: %v", err)
	}
}

func TestRegisterHandlesElectionTasks(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	for _, taskType := range []string{queue.TaskVoteReceiptEmail, queue.TaskTallyReconcile} {
		handler, pattern := mux.Handler(asynq.NewTask(taskType, nil))
		if handler == nil || pattern != taskType {
			t.Fatalf("expected handler registered for %s, got pattern %q", taskType, pattern)
		}
	}
}
