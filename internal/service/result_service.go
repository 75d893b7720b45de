package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/unilorin-sug/election/internal/cache"
	"github.com/unilorin-sug/election/internal/logger"
	"github.com/unilorin-sug/election/internal/models"
	"github.com/unilorin-sug/election/internal/repository"

	"github.com/shopspring/decimal"
)

// ResultService 计票结果服务（只读）
type ResultService struct {
	electionRepo  repository.ElectionRepository
	candidateRepo repository.CandidateRepository
	voteRepo      repository.VoteRepository
}

// CandidateResult 候选人得票
type CandidateResult struct {
	CandidateID uint            `json:"candidate_id"`
	StudentID   uint            `json:"student_id"`
	FullName    string          `json:"full_name"`
	Position    string          `json:"position"`
	VoteCount   int64           `json:"vote_count"`
	Percentage  decimal.Decimal `json:"percentage"`
}

// PositionResult 单个职位的结果
type PositionResult struct {
	Position   string            `json:"position"`
	Candidates []CandidateResult `json:"candidates"`
}

// ElectionResult 选举结果
type ElectionResult struct {
	ElectionID uint             `json:"election_id"`
	Title      string           `json:"title"`
	TotalVotes int64            `json:"total_votes"`
	Positions  []PositionResult `json:"positions"`
}

var hundred = decimal.NewFromInt(100)

// 公开结果接口在投票高峰期的缓存时间，投票与对账后主动失效
const resultsCacheTTL = 5 * time.Second

func resultsCacheKey(electionID uint) string {
	return fmt.Sprintf("results:election:%d", electionID)
}

// invalidateResults 删除结果缓存，失败仅记录日志（最迟 TTL 后自然过期）
func invalidateResults(ctx context.Context, electionID uint) {
	if err := cache.Del(ctx, resultsCacheKey(electionID)); err != nil {
		logger.Warnw("results_cache_invalidate_failed", "election_id", electionID, "error", err)
	}
}

// NewResultService 创建结果服务
func NewResultService(electionRepo repository.ElectionRepository, candidateRepo repository.CandidateRepository, voteRepo repository.VoteRepository) *ResultService {
	return &ResultService{
		electionRepo:  electionRepo,
		candidateRepo: candidateRepo,
		voteRepo:      voteRepo,
	}
}

// ComputeResults 计算选举结果。
// 职位按选举声明顺序输出，职位内按票数降序，同票时先登记者在前。
func (s *ResultService) ComputeResults(electionID uint) (*ElectionResult, error) {
	election, err := s.electionRepo.GetByID(electionID)
	if err != nil {
		return nil, err
	}
	if election == nil {
		return nil, ErrNotFound
	}
	candidates, err := s.candidateRepo.ListByElection(electionID)
	if err != nil {
		return nil, err
	}
	totalVotes, err := s.voteRepo.CountByElection(electionID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.Candidate, len(election.Positions))
	for _, candidate := range candidates {
		grouped[candidate.Position] = append(grouped[candidate.Position], candidate)
	}

	result := &ElectionResult{
		ElectionID: election.ID,
		Title:      election.Title,
		TotalVotes: totalVotes,
		Positions:  make([]PositionResult, 0, len(election.Positions)),
	}
	for _, position := range election.Positions {
		items := grouped[position]
		sortCandidatesByVotes(items)
		rows := make([]CandidateResult, 0, len(items))
		for _, candidate := range items {
			rows = append(rows, CandidateResult{
				CandidateID: candidate.ID,
				StudentID:   candidate.StudentID,
				FullName:    candidateName(candidate),
				Position:    candidate.Position,
				VoteCount:   candidate.VoteCount,
				Percentage:  votePercentage(candidate.VoteCount, totalVotes),
			})
		}
		result.Positions = append(result.Positions, PositionResult{
			Position:   position,
			Candidates: rows,
		})
	}
	return result, nil
}

func sortCandidatesByVotes(items []models.Candidate) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].VoteCount != items[j].VoteCount {
			return items[i].VoteCount > items[j].VoteCount
		}
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}

// votePercentage 保留两位小数，总票数为 0 时返回 0
func votePercentage(votes, total int64) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(votes).Mul(hundred).Div(decimal.NewFromInt(total)).Round(2)
}

func candidateName(candidate models.Candidate) string {
	if candidate.Student == nil {
		return ""
	}
	return candidate.Student.FullName
}

// CachedResults 带短期 Redis 缓存的结果查询，未启用 Redis 时等同 ComputeResults
func (s *ResultService) CachedResults(ctx context.Context, electionID uint) (*ElectionResult, error) {
	key := resultsCacheKey(electionID)
	var cached ElectionResult
	if hit, err := cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}
	result, err := s.ComputeResults(electionID)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, key, result, resultsCacheTTL); err != nil {
		logger.Warnw("results_cache_store_failed", "election_id", electionID, "error", err)
	}
	return result, nil
}
