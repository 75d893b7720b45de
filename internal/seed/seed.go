package seed

import (
	"errors"
	"fmt"
	"time"

	"github.com/unilorin-sug/election/internal/logger"
	"github.com/unilorin-sug/election/internal/models"
	"github.com/unilorin-sug/election/internal/provider"
	"github.com/unilorin-sug/election/internal/service"
)

// Result 演示数据写入结果
type Result struct {
	ElectionID uint
	Students   int
	Candidates int
	Skipped    bool
}

type demoStudent struct {
	Matric     string
	Email      string
	FullName   string
	Faculty    string
	Department string
	Level      string
}

type demoCandidacy struct {
	Matric    string
	Position  string
	Manifesto string
}

var demoPositions = []string{"President", "Vice President", "General Secretary"}

var demoStudents = []demoStudent{
	{Matric: "19/52HA001", Email: "amina.bello@students.unilorin.edu.ng", FullName: "Amina Bello", Faculty: "Communication and Information Sciences", Department: "Computer Science", Level: "400"},
	{Matric: "19/52HA002", Email: "tunde.adeyemi@students.unilorin.edu.ng", FullName: "Tunde Adeyemi", Faculty: "Engineering and Technology", Department: "Electrical Engineering", Level: "400"},
	{Matric: "20/55EC014", Email: "chiamaka.okafor@students.unilorin.edu.ng", FullName: "Chiamaka Okafor", Faculty: "Law", Department: "Public Law", Level: "300"},
	{Matric: "20/55EC027", Email: "ibrahim.yusuf@students.unilorin.edu.ng", FullName: "Ibrahim Yusuf", Faculty: "Management Sciences", Department: "Accounting", Level: "300"},
	{Matric: "21/66JA101", Email: "grace.olawale@students.unilorin.edu.ng", FullName: "Grace Olawale", Faculty: "Arts", Department: "English", Level: "200"},
	{Matric: "21/66JA102", Email: "samuel.eze@students.unilorin.edu.ng", FullName: "Samuel Eze", Faculty: "Sciences", Department: "Physics", Level: "200"},
}

var demoCandidacies = []demoCandidacy{
	{Matric: "19/52HA001", Position: "President", Manifesto: "Open budgets and a 24-hour library."},
	{Matric: "19/52HA002", Position: "President", Manifesto: "Reliable shuttles between hostels and faculties."},
	{Matric: "20/55EC014", Position: "Vice President", Manifesto: "A legal aid desk for every student."},
	{Matric: "20/55EC027", Position: "General Secretary", Manifesto: "Minutes of every meeting published within a week."},
	{Matric: "21/66JA101", Position: "General Secretary", Manifesto: "A student feedback portal reviewed monthly."},
}

// Run 写入一场演示选举及其候选人，已存在时跳过
func Run(c *provider.Container, now time.Time) (*Result, error) {
	if c == nil {
		return nil, errors.New("container is nil")
	}
	first, err := c.StudentService.FindByMatric(demoStudents[0].Matric)
	if err != nil {
		return nil, err
	}
	if first != nil {
		logger.Infow("seed_skipped", "reason", "demo_students_exist")
		return &Result{Skipped: true}, nil
	}

	students := make(map[string]*models.Student, len(demoStudents))
	for _, item := range demoStudents {
		student, err := c.StudentService.RegisterStudent(service.RegisterStudentInput{
			MatricNumber: item.Matric,
			Email:        item.Email,
			FullName:     item.FullName,
			Faculty:      item.Faculty,
			Department:   item.Department,
			Level:        item.Level,
		})
		if err != nil {
			return nil, fmt.Errorf("seed student %s: %w", item.Matric, err)
		}
		if _, err := c.StudentService.MarkVerified(student.ID); err != nil {
			return nil, fmt.Errorf("verify student %s: %w", item.Matric, err)
		}
		students[item.Matric] = student
	}

	start := now.UTC().Truncate(time.Hour)
	election, err := c.ElectionService.CreateElection(service.CreateElectionInput{
		Title:       fmt.Sprintf("SUG General Election %d", start.Year()),
		Description: "Students' Union Government executive election",
		StartTime:   start,
		EndTime:     start.Add(72 * time.Hour),
		Positions:   demoPositions,
	})
	if err != nil {
		return nil, fmt.Errorf("seed election: %w", err)
	}

	for _, item := range demoCandidacies {
		if _, err := c.CandidateService.AddCandidate(service.AddCandidateInput{
			StudentID:  students[item.Matric].ID,
			ElectionID: election.ID,
			Position:   item.Position,
			Manifesto:  item.Manifesto,
		}); err != nil {
			return nil, fmt.Errorf("seed candidate %s: %w", item.Matric, err)
		}
	}

	logger.Infow("seed_completed",
		"election_id", election.ID,
		"students", len(demoStudents),
		"candidates", len(demoCandidacies),
	)
	return &Result{
		ElectionID: election.ID,
		Students:   len(demoStudents),
		Candidates: len(demoCandidacies),
	}, nil
}
