package service

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/unilorin-sug/election/internal/models"
	"github.com/unilorin-sug/election/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type electionTestEnv struct {
	db            *gorm.DB
	studentRepo   *repository.GormStudentRepository
	electionRepo  *repository.GormElectionRepository
	candidateRepo *repository.GormCandidateRepository
	voteRepo      *repository.GormVoteRepository
	codeRepo      *repository.GormVerificationCodeRepository
}

func setupElectionTestEnv(t *testing.T, name string) *electionTestEnv {
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
	return &electionTestEnv{
		db:            db,
		studentRepo:   repository.NewStudentRepository(db),
		electionRepo:  repository.NewElectionRepository(db),
		candidateRepo: repository.NewCandidateRepository(db),
		voteRepo:      repository.NewVoteRepository(db),
		codeRepo:      repository.NewVerificationCodeRepository(db),
	}
}

func (e *electionTestEnv) createStudent(t *testing.T, matric string) *models.Student {
	t.Helper()
	student := &models.Student{
		MatricNumber: matric,
		Email:        fmt.Sprintf("%s@students.unilorin.edu.ng", matric),
		FullName:     "Student " + matric,
		Faculty:      "Science",
		Department:   "Computer Science",
		Level:        "300",
	}
	if err := e.db.Create(student).Error; err != nil {
		t.Fatalf("create student failed: %v", err)
	}
	return student
}

func (e *electionTestEnv) createElection(t *testing.T, positions ...string) *models.Election {
	t.Helper()
	now := time.Now().UTC()
	election := &models.Election{
		Title:     "SUG General Election",
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(24 * time.Hour),
		Positions: models.StringArray(positions),
	}
	if err := e.db.Create(election).Error; err != nil {
		t.Fatalf("create election failed: %v", err)
	}
	return election
}

func (e *electionTestEnv) createCandidate(t *testing.T, studentID, electionID uint, position string) *models.Candidate {
	t.Helper()
	candidate := &models.Candidate{
		StudentID:  studentID,
		ElectionID: electionID,
		Position:   position,
	}
	if err := e.db.Omit("Student").Create(candidate).Error; err != nil {
		t.Fatalf("create candidate failed: %v", err)
	}
	return candidate
}

func (e *electionTestEnv) ballotService() *BallotService {
	return NewBallotService(e.voteRepo, e.candidateRepo, e.studentRepo, e.electionRepo, nil, nil, nil)
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (m *recordingMailer) last() (sentMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMail{}, false
	}
	return m.sent[len(m.sent)-1], true
}

var errMailboxUnavailable = errors.New("mailbox unavailable")
