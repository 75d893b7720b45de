package repository

import (
	"time"

	"github.com/unilorin-sug/election/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VerificationCodeRepository 邮箱验证码数据访问接口
type VerificationCodeRepository interface {
	Upsert(email, code string, expiresAt, now time.Time) error
	GetByEmail(email string) (*models.VerificationCode, error)
	Consume(email, code string, now time.Time) (bool, error)
	DeleteExpired(now time.Time) (int64, error)
}

// GormVerificationCodeRepository GORM 实现
type GormVerificationCodeRepository struct {
	db *gorm.DB
}

// NewVerificationCodeRepository 创建验证码仓库
func NewVerificationCodeRepository(db *gorm.DB) *GormVerificationCodeRepository {
	return &GormVerificationCodeRepository{db: db}
}

// Upsert 写入验证码，同一邮箱后写覆盖先写
func (r *GormVerificationCodeRepository) Upsert(email, code string, expiresAt, now time.Time) error {
	record := models.VerificationCode{
		Email:     email,
		Code:      code,
		ExpiresAt: expiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"code":       code,
			"expires_at": expiresAt,
			"updated_at": now,
		}),
	}).Create(&record).Error
}

// GetByEmail 获取邮箱当前的验证码记录
func (r *GormVerificationCodeRepository) GetByEmail(email string) (*models.VerificationCode, error) {
	return firstOrNil[models.VerificationCode](r.db.Where("email = ?", email))
}

// Consume 单条 DELETE 完成比较并删除；仅当记录存在、验证码一致且未过期时返回 true。
// 条件不满足时不修改记录；并发校验同一验证码时只有一方 RowsAffected 为 1。
func (r *GormVerificationCodeRepository) Consume(email, code string, now time.Time) (bool, error) {
	result := r.db.Where("email = ? AND code = ? AND expires_at > ?", email, code, now).
		Delete(&models.VerificationCode{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// DeleteExpired 清理已过期验证码
func (r *GormVerificationCodeRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at <= ?", now).Delete(&models.VerificationCode{})
	return result.RowsAffected, result.Error
}
