package service

import (
	"strings"
	"time"

	"github.com/unilorin-sug/election/internal/logger"
	"github.com/unilorin-sug/election/internal/models"
	"github.com/unilorin-sug/election/internal/repository"
)

// ElectionService 选举管理服务
type ElectionService struct {
	repo repository.ElectionRepository
}

// CreateElectionInput 创建选举输入
type CreateElectionInput struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Positions   []string
	CreatedBy   uint
}

// NewElectionService 创建选举服务
func NewElectionService(repo repository.ElectionRepository) *ElectionService {
	return &ElectionService{repo: repo}
}

// CreateElection 创建选举，职位列表需非空且不重复（保持声明顺序）
func (s *ElectionService) CreateElection(input CreateElectionInput) (*models.Election, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || input.StartTime.IsZero() || input.EndTime.IsZero() || !input.StartTime.Before(input.EndTime) {
		return nil, ErrInvalidElection
	}
	positions, err := normalizePositions(input.Positions)
	if err != nil {
		return nil, err
	}

	election := &models.Election{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		StartTime:   input.StartTime.UTC(),
		EndTime:     input.EndTime.UTC(),
		Positions:   positions,
		CreatedBy:   input.CreatedBy,
	}
	if err := s.repo.Create(election); err != nil {
		return nil, err
	}
	logger.Infow("election_created", "election_id", election.ID, "positions", len(positions), "created_by", input.CreatedBy)
	return election, nil
}

// GetByID 获取选举，不存在返回 ErrNotFound
func (s *ElectionService) GetByID(id uint) (*models.Election, error) {
	election, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if election == nil {
		return nil, ErrNotFound
	}
	return election, nil
}

// List 选举列表
func (s *ElectionService) List(filter repository.ElectionListFilter) ([]models.Election, int64, error) {
	return s.repo.List(filter)
}

func normalizePositions(raw []string) (models.StringArray, error) {
	positions := make(models.StringArray, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		position := strings.TrimSpace(item)
		if position == "" {
			return nil, ErrInvalidPositions
		}
		if _, ok := seen[position]; ok {
			return nil, ErrInvalidPositions
		}
		seen[position] = struct{}{}
		positions = append(positions, position)
	}
	if len(positions) == 0 {
		return nil, ErrInvalidPositions
	}
	return positions, nil
}
