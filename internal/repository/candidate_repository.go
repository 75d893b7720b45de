package repository

import (
	"errors"

	"github.com/unilorin-sug/election/internal/models"

	"gorm.io/gorm"
)

// CandidateRepository 候选人数据访问接口
type CandidateRepository interface {
	Create(candidate *models.Candidate) error
	GetByID(id uint) (*models.Candidate, error)
	GetByStudentElectionPosition(studentID, electionID uint, position string) (*models.Candidate, error)
	ListByElection(electionID uint) ([]models.Candidate, error)
	ListByPosition(electionID uint, position string) ([]models.Candidate, error)
	IncrementVoteCount(id uint) (int64, error)
	SetVoteCount(id uint, count int64) error
	WithTx(tx *gorm.DB) *GormCandidateRepository
}

// GormCandidateRepository GORM 实现
type GormCandidateRepository struct {
	db *gorm.DB
}

// NewCandidateRepository 创建候选人仓库
func NewCandidateRepository(db *gorm.DB) *GormCandidateRepository {
	return &GormCandidateRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCandidateRepository) WithTx(tx *gorm.DB) *GormCandidateRepository {
	if tx == nil {
		return r
	}
	return &GormCandidateRepository{db: tx}
}

// Create 创建候选人，三元组冲突返回 ErrDuplicateKey
func (r *GormCandidateRepository) Create(candidate *models.Candidate) error {
	return translateWriteError(r.db.Omit("Student").Create(candidate).Error)
}

// GetByID 根据 ID 获取候选人
func (r *GormCandidateRepository) GetByID(id uint) (*models.Candidate, error) {
	if id == 0 {
		return nil, nil
	}
	return firstOrNil[models.Candidate](r.db, id)
}

// GetByStudentElectionPosition 按 (学生, 选举, 职位) 获取候选人
func (r *GormCandidateRepository) GetByStudentElectionPosition(studentID, electionID uint, position string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.Where("student_id = ? AND election_id = ? AND position = ?", studentID, electionID, position).
		First(&candidate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &candidate, nil
}

// ListByElection 获取选举下全部候选人，按职位、创建时间排序
func (r *GormCandidateRepository) ListByElection(electionID uint) ([]models.Candidate, error) {
	candidates := make([]models.Candidate, 0)
	err := r.db.Preload("Student").
		Where("election_id = ?", electionID).
		Order("position ASC, created_at ASC, id ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// ListByPosition 获取选举某职位的候选人，按创建时间排序
func (r *GormCandidateRepository) ListByPosition(electionID uint, position string) ([]models.Candidate, error) {
	candidates := make([]models.Candidate, 0)
	err := r.db.Preload("Student").
		Where("election_id = ? AND position = ?", electionID, position).
		Order("created_at ASC, id ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// IncrementVoteCount 票数原子加一，返回受影响行数
func (r *GormCandidateRepository) IncrementVoteCount(id uint) (int64, error) {
	result := r.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		UpdateColumn("vote_count", gorm.Expr("vote_count + ?", 1))
	return result.RowsAffected, result.Error
}

// SetVoteCount 覆盖票数（对账修复使用）
func (r *GormCandidateRepository) SetVoteCount(id uint, count int64) error {
	return r.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		UpdateColumn("vote_count", count).Error
}
