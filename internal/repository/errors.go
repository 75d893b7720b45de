package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateKey 唯一约束冲突
var ErrDuplicateKey = errors.New("duplicate key")

const pgUniqueViolationCode = "23505"

// IsDuplicateKeyError 判断是否为唯一约束冲突（兼容 sqlite 与 postgres）
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicateKey) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolationCode
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") ||
		strings.Contains(message, "duplicate key value")
}

// translateWriteError 将唯一约束冲突统一转换为 ErrDuplicateKey
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}
