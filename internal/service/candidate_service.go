package service

import (
	"errors"
	"strings"

	"github.com/unilorin-sug/election/internal/logger"
	"github.com/unilorin-sug/election/internal/models"
	"github.com/unilorin-sug/election/internal/repository"
)

// CandidateService 候选人登记服务
type CandidateService struct {
	candidateRepo repository.CandidateRepository
	studentRepo   repository.StudentRepository
	electionRepo  repository.ElectionRepository
}

// AddCandidateInput 登记候选人输入
type AddCandidateInput struct {
	StudentID  uint
	ElectionID uint
	Position   string
	Manifesto  string
	ImageURL   string
}

// NewCandidateService 创建候选人服务
func NewCandidateService(candidateRepo repository.CandidateRepository, studentRepo repository.StudentRepository, electionRepo repository.ElectionRepository) *CandidateService {
	return &CandidateService{
		candidateRepo: candidateRepo,
		studentRepo:   studentRepo,
		electionRepo:  electionRepo,
	}
}

// AddCandidate 登记候选人，初始票数为 0
func (s *CandidateService) AddCandidate(input AddCandidateInput) (*models.Candidate, error) {
	student, err := s.studentRepo.GetByID(input.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrNotFound
	}
	election, err := s.electionRepo.GetByID(input.ElectionID)
	if err != nil {
		return nil, err
	}
	if election == nil {
		return nil, ErrNotFound
	}
	position := strings.TrimSpace(input.Position)
	if !election.HasPosition(position) {
		return nil, ErrUnknownPosition
	}

	existing, err := s.candidateRepo.GetByStudentElectionPosition(student.ID, election.ID, position)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateCandidacy
	}

	candidate := &models.Candidate{
		StudentID:  student.ID,
		ElectionID: election.ID,
		Position:   position,
		Manifesto:  strings.TrimSpace(input.Manifesto),
		ImageURL:   strings.TrimSpace(input.ImageURL),
		VoteCount:  0,
	}
	if err := s.candidateRepo.Create(candidate); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateCandidacy
		}
		return nil, err
	}
	candidate.Student = student
	logger.Infow("candidate_added",
		"candidate_id", candidate.ID,
		"election_id", election.ID,
		"student_id", student.ID,
		"position", position,
	)
	return candidate, nil
}

// IncrementVote 票数原子加一
func (s *CandidateService) IncrementVote(candidateID uint) error {
	affected, err := s.candidateRepo.IncrementVoteCount(candidateID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID 获取候选人
func (s *CandidateService) GetByID(id uint) (*models.Candidate, error) {
	candidate, err := s.candidateRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, ErrNotFound
	}
	return candidate, nil
}

// ListByElection 选举全部候选人（按职位、登记时间排序）
func (s *CandidateService) ListByElection(electionID uint) ([]models.Candidate, error) {
	return s.candidateRepo.ListByElection(electionID)
}

// ListByPosition 某职位候选人（按登记时间排序）
func (s *CandidateService) ListByPosition(electionID uint, position string) ([]models.Candidate, error) {
	return s.candidateRepo.ListByPosition(electionID, strings.TrimSpace(position))
}
