package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/unilorin-sug/election/internal/logger"
	"github.com/unilorin-sug/election/internal/models"
	"github.com/unilorin-sug/election/internal/repository"

	"github.com/ethereum/go-ethereum/common"
)

// StudentService 学生名册服务
type StudentService struct {
	repo         repository.StudentRepository
	verification *VerificationService
	metrics      *ElectionMetrics
	nowFunc      func() time.Time
}

// RegisterStudentInput 学生注册输入
type RegisterStudentInput struct {
	MatricNumber  string
	Email         string
	FullName      string
	Faculty       string
	Department    string
	Level         string
	WalletAddress string
}

// NewStudentService 创建学生服务
func NewStudentService(repo repository.StudentRepository, verification *VerificationService, metrics *ElectionMetrics) *StudentService {
	return &StudentService{
		repo:         repo,
		verification: verification,
		metrics:      metrics,
		nowFunc:      time.Now,
	}
}

// RegisterStudent 注册学生，邮箱或学号已存在时返回 ErrDuplicateStudent
func (s *StudentService) RegisterStudent(input RegisterStudentInput) (*models.Student, error) {
	matric := normalizeMatricNumber(input.MatricNumber)
	fullName := strings.TrimSpace(input.FullName)
	if matric == "" || strings.TrimSpace(input.Email) == "" || fullName == "" {
		return nil, ErrStudentFieldsRequired
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	wallet, err := normalizeWalletAddress(input.WalletAddress)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmailOrMatric(email, matric)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateStudent
	}

	student := &models.Student{
		MatricNumber:  matric,
		Email:         email,
		FullName:      fullName,
		Faculty:       strings.TrimSpace(input.Faculty),
		Department:    strings.TrimSpace(input.Department),
		Level:         strings.TrimSpace(input.Level),
		WalletAddress: wallet,
		IsVerified:    false,
	}
	if err := s.repo.Create(student); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateStudent
		}
		return nil, err
	}
	s.metrics.observeStudentRegistered()
	logger.Infow("student_registered", "student_id", student.ID, "matric_number", student.MatricNumber)
	return student, nil
}

// MarkVerified 标记学生邮箱已验证（幂等）
func (s *StudentService) MarkVerified(studentID uint) (*models.Student, error) {
	student, err := s.repo.GetByID(studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrNotFound
	}
	if student.IsVerified {
		return student, nil
	}
	now := s.nowFunc().UTC()
	if err := s.repo.MarkVerified(studentID, now); err != nil {
		return nil, err
	}
	student.IsVerified = true
	student.VerifiedAt = &now
	logger.Infow("student_verified", "student_id", studentID)
	return student, nil
}

// VerifyEmailAndMark 消费邮箱验证码，若该邮箱属于已注册学生则标记为已验证。
// 未注册的邮箱返回 (nil, nil)。
func (s *StudentService) VerifyEmailAndMark(ctx context.Context, email, code string) (*models.Student, error) {
	if err := s.verification.VerifyCode(ctx, email, code); err != nil {
		return nil, err
	}
	student, err := s.FindByEmail(email)
	if err != nil || student == nil {
		return nil, err
	}
	return s.MarkVerified(student.ID)
}

// FindByEmail 按邮箱查询，不存在返回 (nil, nil)
func (s *StudentService) FindByEmail(email string) (*models.Student, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return nil, nil
	}
	return s.repo.GetByEmail(normalized)
}

// FindByMatric 按学号查询，不存在返回 (nil, nil)
func (s *StudentService) FindByMatric(matricNumber string) (*models.Student, error) {
	normalized := normalizeMatricNumber(matricNumber)
	if normalized == "" {
		return nil, nil
	}
	return s.repo.GetByMatric(normalized)
}

// GetByID 获取学生
func (s *StudentService) GetByID(id uint) (*models.Student, error) {
	student, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrNotFound
	}
	return student, nil
}

// List 学生列表
func (s *StudentService) List(filter repository.StudentListFilter) ([]models.Student, int64, error) {
	return s.repo.List(filter)
}

func normalizeMatricNumber(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// normalizeWalletAddress 校验并转换为 EIP-55 校验和格式，空值允许
func normalizeWalletAddress(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}
	if !common.IsHexAddress(trimmed) {
		return "", ErrInvalidWalletAddress
	}
	return common.HexToAddress(trimmed).Hex(), nil
}
