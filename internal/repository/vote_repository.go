package repository

import (
	"context"

	"github.com/unilorin-sug/election/internal/models"

	"gorm.io/gorm"
)

// VoteRepository 选票数据访问接口
type VoteRepository interface {
	Create(vote *models.Vote) error
	GetByID(id uint) (*models.Vote, error)
	GetByStudentAndElection(studentID, electionID uint) (*models.Vote, error)
	HasVoted(studentID, electionID uint) (bool, error)
	CountByElection(electionID uint) (int64, error)
	TallyByElection(electionID uint) ([]CandidateTally, error)
	List(filter VoteListFilter) ([]models.Vote, int64, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormVoteRepository
}

// GormVoteRepository GORM 实现
type GormVoteRepository struct {
	db *gorm.DB
}

// NewVoteRepository 创建选票仓库
func NewVoteRepository(db *gorm.DB) *GormVoteRepository {
	return &GormVoteRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVoteRepository) WithTx(tx *gorm.DB) *GormVoteRepository {
	if tx == nil {
		return r
	}
	return &GormVoteRepository{db: tx}
}

// Transaction 在单个数据库事务中执行，fn 返回错误时整体回滚
func (r *GormVoteRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

// Create 写入选票，(student_id, election_id) 冲突返回 ErrDuplicateKey
func (r *GormVoteRepository) Create(vote *models.Vote) error {
	return translateWriteError(r.db.Create(vote).Error)
}

// GetByID 根据 ID 获取选票
func (r *GormVoteRepository) GetByID(id uint) (*models.Vote, error) {
	if id == 0 {
		return nil, nil
	}
	return firstOrNil[models.Vote](r.db, id)
}

// GetByStudentAndElection 获取学生在某选举的选票
func (r *GormVoteRepository) GetByStudentAndElection(studentID, electionID uint) (*models.Vote, error) {
	return firstOrNil[models.Vote](r.db.Where("student_id = ? AND election_id = ?", studentID, electionID))
}

// HasVoted 学生是否已在该选举投票
func (r *GormVoteRepository) HasVoted(studentID, electionID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Vote{}).
		Where("student_id = ? AND election_id = ?", studentID, electionID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByElection 统计选举总票数
func (r *GormVoteRepository) CountByElection(electionID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Vote{}).Where("election_id = ?", electionID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// TallyByElection 按候选人统计选票实际数量
func (r *GormVoteRepository) TallyByElection(electionID uint) ([]CandidateTally, error) {
	rows := make([]CandidateTally, 0)
	err := r.db.Model(&models.Vote{}).
		Select("candidate_id, COUNT(*) AS votes").
		Where("election_id = ?", electionID).
		Group("candidate_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// List 选票列表，按投票时间倒序
func (r *GormVoteRepository) List(filter VoteListFilter) ([]models.Vote, int64, error) {
	query := r.db.Model(&models.Vote{})
	if filter.ElectionID != 0 {
		query = query.Where("election_id = ?", filter.ElectionID)
	}
	if filter.CandidateID != 0 {
		query = query.Where("candidate_id = ?", filter.CandidateID)
	}
	if filter.StudentID != 0 {
		query = query.Where("student_id = ?", filter.StudentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var votes []models.Vote
	if err := query.Order("timestamp DESC, id DESC").Find(&votes).Error; err != nil {
		return nil, 0, err
	}
	return votes, total, nil
}
