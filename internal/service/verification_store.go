package service

import (
	"context"
	"time"

	"github.com/unilorin-sug/election/internal/repository"
)

// VerificationCodeStore 邮箱验证码存储。
// Consume 必须是单次原子的比较并删除：仅当验证码一致且 now 早于过期时间时删除并返回 true，
// 否则不修改记录。
type VerificationCodeStore interface {
	Save(ctx context.Context, email, code string, expiresAt, now time.Time) error
	Consume(ctx context.Context, email, code string, now time.Time) (bool, error)
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

// DatabaseVerificationCodeStore 基于数据库的验证码存储
type DatabaseVerificationCodeStore struct {
	repo repository.VerificationCodeRepository
}

// NewDatabaseVerificationCodeStore 创建数据库验证码存储
func NewDatabaseVerificationCodeStore(repo repository.VerificationCodeRepository) *DatabaseVerificationCodeStore {
	return &DatabaseVerificationCodeStore{repo: repo}
}

// Save 写入验证码（同邮箱覆盖）
func (s *DatabaseVerificationCodeStore) Save(_ context.Context, email, code string, expiresAt, now time.Time) error {
	return s.repo.Upsert(email, code, expiresAt, now)
}

// Consume 比较并删除验证码
func (s *DatabaseVerificationCodeStore) Consume(_ context.Context, email, code string, now time.Time) (bool, error) {
	return s.repo.Consume(email, code, now)
}

// SweepExpired 删除过期验证码
func (s *DatabaseVerificationCodeStore) SweepExpired(_ context.Context, now time.Time) (int64, error) {
	return s.repo.DeleteExpired(now)
}
