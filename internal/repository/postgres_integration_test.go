//go:build integration
// +build integration

package repository

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/unilorin-sug/election/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := models.AllModels()
	_ = db.Migrator().DropTable(cleanupModels...)
	if err := models.MigrateDB(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresUniqueViolationsTranslate(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	studentRepo := NewStudentRepository(db)
	voteRepo := NewVoteRepository(db)

	student := &models.Student{
		MatricNumber: "19/52HA900",
		Email:        "pg@students.unilorin.edu.ng",
		FullName:     "Postgres Student",
		Faculty:      "Science",
		Department:   "Physics",
		Level:        "300",
	}
	if err := studentRepo.Create(student); err != nil {
		t.Fatalf("create student failed: %v", err)
	}
	dup := *student
	dup.ID = 0
	if err := studentRepo.Create(&dup); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey for student, got %v", err)
	}

	election := &models.Election{
		Title:     "PG Election",
		StartTime: time.Now().Add(-time.Hour),
		EndTime:   time.Now().Add(time.Hour),
		Positions: models.StringArray{"President"},
	}
	if err := db.Create(election).Error; err != nil {
		t.Fatalf("create election failed: %v", err)
	}
	vote := &models.Vote{StudentID: student.ID, ElectionID: election.ID, CandidateID: 1, Timestamp: time.Now()}
	if err := voteRepo.Create(vote); err != nil {
		t.Fatalf("create vote failed: %v", err)
	}
	again := &models.Vote{StudentID: student.ID, ElectionID: election.ID, CandidateID: 2, Timestamp: time.Now()}
	if err := voteRepo.Create(again); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey for vote, got %v", err)
	}
}

func TestPostgresStudentKeywordSearchIsCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewStudentRepository(db)
	student := &models.Student{
		MatricNumber: "19/52HA901",
		Email:        "adaeze@students.unilorin.edu.ng",
		FullName:     "Adaeze Okafor",
		Faculty:      "Arts",
		Department:   "History",
		Level:        "200",
	}
	if err := repo.Create(student); err != nil {
		t.Fatalf("create student failed: %v", err)
	}
	rows, total, err := repo.List(StudentListFilter{Keyword: "OKAFOR"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("expected ILIKE match, total=%d", total)
	}
}
