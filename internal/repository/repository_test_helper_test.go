package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/unilorin-sug/election/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openRepositoryTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
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
	return db
}

func createRepoTestStudent(t *testing.T, db *gorm.DB, matric, email string) *models.Student {
	t.Helper()
	student := &models.Student{
		MatricNumber: matric,
		Email:        email,
		FullName:     "Student " + matric,
		Faculty:      "Science",
		Department:   "Computer Science",
		Level:        "400",
	}
	if err := db.Create(student).Error; err != nil {
		t.Fatalf("create student failed: %v", err)
	}
	return student
}

func createRepoTestElection(t *testing.T, db *gorm.DB, positions ...string) *models.Election {
	t.Helper()
	now := time.Now().UTC()
	election := &models.Election{
		Title:     "SUG Election",
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(time.Hour),
		Positions: models.StringArray(positions),
	}
	if err := db.Create(election).Error; err != nil {
		t.Fatalf("create election failed: %v", err)
	}
	return election
}
