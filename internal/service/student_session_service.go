package service

import (
	"errors"
	"time"

	"github.com/unilorin-sug/election/internal/config"
	"github.com/unilorin-sug/election/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// StudentClaims 学生会话 JWT 声明，仅在邮箱验证成功后签发
type StudentClaims struct {
	StudentID uint   `json:"student_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// StudentSessionService 学生投票会话服务
type StudentSessionService struct {
	cfg     config.JWTConfig
	nowFunc func() time.Time
}

// NewStudentSessionService 创建学生会话服务
func NewStudentSessionService(cfg config.JWTConfig) *StudentSessionService {
	return &StudentSessionService{cfg: cfg, nowFunc: time.Now}
}

// Issue 为已验证学生签发会话令牌
func (s *StudentSessionService) Issue(student *models.Student) (string, time.Time, error) {
	if student == nil || student.ID == 0 {
		return "", time.Time{}, ErrNotFound
	}
	if !student.IsVerified {
		return "", time.Time{}, ErrStudentNotVerified
	}
	hours := s.cfg.ExpireHours
	if hours <= 0 {
		hours = 2
	}
	now := s.nowFunc()
	expiresAt := now.Add(time.Duration(hours) * time.Hour)
	claims := StudentClaims{
		StudentID: student.ID,
		Email:     student.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   student.MatricNumber,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse 解析学生会话令牌
func (s *StudentSessionService) Parse(tokenString string) (*StudentClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.nowFunc),
	)
	token, err := parser.ParseWithClaims(tokenString, &StudentClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*StudentClaims)
	if !ok || !token.Valid || claims.StudentID == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
