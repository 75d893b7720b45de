package repository

import (
	"github.com/unilorin-sug/election/internal/models"

	"gorm.io/gorm"
)

// ElectionRepository 选举数据访问接口
type ElectionRepository interface {
	Create(election *models.Election) error
	GetByID(id uint) (*models.Election, error)
	List(filter ElectionListFilter) ([]models.Election, int64, error)
	WithTx(tx *gorm.DB) *GormElectionRepository
}

// GormElectionRepository GORM 实现
type GormElectionRepository struct {
	db *gorm.DB
}

// NewElectionRepository 创建选举仓库
func NewElectionRepository(db *gorm.DB) *GormElectionRepository {
	return &GormElectionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormElectionRepository) WithTx(tx *gorm.DB) *GormElectionRepository {
	if tx == nil {
		return r
	}
	return &GormElectionRepository{db: tx}
}

// Create 创建选举
func (r *GormElectionRepository) Create(election *models.Election) error {
	return r.db.Create(election).Error
}

// GetByID 根据 ID 获取选举
func (r *GormElectionRepository) GetByID(id uint) (*models.Election, error) {
	if id == 0 {
		return nil, nil
	}
	return firstOrNil[models.Election](r.db, id)
}

// List 选举列表，最新开始的在前
func (r *GormElectionRepository) List(filter ElectionListFilter) ([]models.Election, int64, error) {
	query := r.db.Model(&models.Election{})
	if condition, args := buildLikeCondition(r.db, filter.Keyword, "title", "description"); condition != "" {
		query = query.Where(condition, args...)
	}
	if filter.ActiveAt != nil {
		query = query.Where("start_time <= ? AND end_time > ?", *filter.ActiveAt, *filter.ActiveAt)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var elections []models.Election
	if err := query.Order("start_time DESC, id DESC").Find(&elections).Error; err != nil {
		return nil, 0, err
	}
	return elections, total, nil
}
