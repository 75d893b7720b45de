package repository

import (
	"time"

	"github.com/unilorin-sug/election/internal/models"

	"gorm.io/gorm"
)

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	Create(student *models.Student) error
	GetByID(id uint) (*models.Student, error)
	GetByEmail(email string) (*models.Student, error)
	GetByMatric(matricNumber string) (*models.Student, error)
	GetByEmailOrMatric(email, matricNumber string) (*models.Student, error)
	MarkVerified(id uint, verifiedAt time.Time) error
	List(filter StudentListFilter) ([]models.Student, int64, error)
	WithTx(tx *gorm.DB) *GormStudentRepository
}

// GormStudentRepository GORM 实现
type GormStudentRepository struct {
	db *gorm.DB
}

// NewStudentRepository 创建学生仓库
func NewStudentRepository(db *gorm.DB) *GormStudentRepository {
	return &GormStudentRepository{db: db}
}

// WithTx 绑定事务
func (r *GormStudentRepository) WithTx(tx *gorm.DB) *GormStudentRepository {
	if tx == nil {
		return r
	}
	return &GormStudentRepository{db: tx}
}

// Create 创建学生，唯一约束冲突返回 ErrDuplicateKey
func (r *GormStudentRepository) Create(student *models.Student) error {
	return translateWriteError(r.db.Create(student).Error)
}

// GetByID 根据 ID 获取学生
func (r *GormStudentRepository) GetByID(id uint) (*models.Student, error) {
	if id == 0 {
		return nil, nil
	}
	return firstOrNil[models.Student](r.db, id)
}

// GetByEmail 根据邮箱获取学生
func (r *GormStudentRepository) GetByEmail(email string) (*models.Student, error) {
	return r.first("email = ?", email)
}

// GetByMatric 根据学号获取学生
func (r *GormStudentRepository) GetByMatric(matricNumber string) (*models.Student, error) {
	return r.first("matric_number = ?", matricNumber)
}

// GetByEmailOrMatric 邮箱或学号任一命中即返回
func (r *GormStudentRepository) GetByEmailOrMatric(email, matricNumber string) (*models.Student, error) {
	return r.first("email = ? OR matric_number = ?", email, matricNumber)
}

func (r *GormStudentRepository) first(query string, args ...interface{}) (*models.Student, error) {
	return firstOrNil[models.Student](r.db.Where(query, args...).Order("id ASC"))
}

// MarkVerified 标记邮箱已验证，重复调用保留首次验证时间
func (r *GormStudentRepository) MarkVerified(id uint, verifiedAt time.Time) error {
	return r.db.Model(&models.Student{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_verified": true,
			"verified_at": gorm.Expr("COALESCE(verified_at, ?)", verifiedAt),
			"updated_at":  verifiedAt,
		}).Error
}

// List 学生列表，按创建时间倒序
func (r *GormStudentRepository) List(filter StudentListFilter) ([]models.Student, int64, error) {
	query := r.db.Model(&models.Student{})

	if condition, args := buildLikeCondition(r.db, filter.Keyword, "email", "full_name", "matric_number"); condition != "" {
		query = query.Where(condition, args...)
	}
	if filter.Faculty != "" {
		query = query.Where("faculty = ?", filter.Faculty)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.IsVerified != nil {
		query = query.Where("is_verified = ?", *filter.IsVerified)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var students []models.Student
	if err := query.Order("created_at DESC, id DESC").Find(&students).Error; err != nil {
		return nil, 0, err
	}
	return students, total, nil
}
