package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/unilorin-sug/election/internal/config"
	"github.com/unilorin-sug/election/internal/constants"
	"github.com/unilorin-sug/election/internal/i18n"
	"github.com/unilorin-sug/election/internal/logger"
)

// VerificationService 邮箱一次性验证码服务
type VerificationService struct {
	store   VerificationCodeStore
	mailer  Mailer
	cfg     config.VerificationConfig
	metrics *ElectionMetrics

	nowFunc  func() time.Time
	codeFunc func(length int) (string, error)
}

// NewVerificationService 创建验证码服务
func NewVerificationService(store VerificationCodeStore, mailer Mailer, cfg config.VerificationConfig, metrics *ElectionMetrics) *VerificationService {
	return &VerificationService{
		store:    store,
		mailer:   mailer,
		cfg:      cfg,
		metrics:  metrics,
		nowFunc:  time.Now,
		codeFunc: randomNumericCode,
	}
}

// ExpireMinutes 验证码有效期（分钟）
func (s *VerificationService) ExpireMinutes() int {
	if s.cfg.ExpireMinutes <= 0 {
		return constants.VerificationCodeExpireMinutes
	}
	return s.cfg.ExpireMinutes
}

func (s *VerificationService) now() time.Time {
	return s.nowFunc().UTC()
}

// RequestCode 生成并发送验证码。
// 验证码先落库再发信，发信失败返回 ErrDeliveryFailed，已存储的验证码保持有效。
func (s *VerificationService) RequestCode(ctx context.Context, email, locale string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if !s.isDomainAllowed(normalized) {
		return ErrEmailDomainNotAllowed
	}

	code, err := s.codeFunc(constants.VerificationCodeLength)
	if err != nil {
		return fmt.Errorf("generate verification code: %w", err)
	}
	now := s.now()
	expireMinutes := s.ExpireMinutes()
	expiresAt := now.Add(time.Duration(expireMinutes) * time.Minute)
	if err := s.store.Save(ctx, normalized, code, expiresAt, now); err != nil {
		return fmt.Errorf("save verification code: %w", err)
	}

	if s.mailer == nil {
		s.metrics.observeCodeSent(false)
		return ErrDeliveryFailed
	}
	subject := i18n.T(locale, "email.code_subject")
	body := i18n.Sprintf(locale, "email.code_body", code, expireMinutes)
	if err := s.mailer.Send(normalized, subject, body); err != nil {
		s.metrics.observeCodeSent(false)
		logger.Warnw("verification_code_delivery_failed", "email", normalized, "error", err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	s.metrics.observeCodeSent(true)
	logger.Infow("verification_code_sent", "email", normalized, "expires_at", expiresAt)
	return nil
}

// VerifyCode 校验并消费验证码，失败时记录保持不变
func (s *VerificationService) VerifyCode(ctx context.Context, email, code string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return ErrInvalidOrExpiredCode
	}
	if code == "" {
		s.metrics.observeCodeVerified(false)
		return ErrInvalidOrExpiredCode
	}
	ok, err := s.store.Consume(ctx, normalized, code, s.now())
	if err != nil {
		return fmt.Errorf("consume verification code: %w", err)
	}
	s.metrics.observeCodeVerified(ok)
	if !ok {
		return ErrInvalidOrExpiredCode
	}
	logger.Infow("verification_code_verified", "email", normalized)
	return nil
}

// SweepExpired 清理过期验证码
func (s *VerificationService) SweepExpired(ctx context.Context) (int64, error) {
	deleted, err := s.store.SweepExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	s.metrics.observeSwept(deleted)
	return deleted, nil
}

func (s *VerificationService) isDomainAllowed(email string) bool {
	if len(s.cfg.AllowedEmailDomains) == 0 {
		return true
	}
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := email[at+1:]
	for _, allowed := range s.cfg.AllowedEmailDomains {
		allowed = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(allowed, "@")))
		if allowed != "" && (domain == allowed || strings.HasSuffix(domain, "."+allowed)) {
			return true
		}
	}
	return false
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

// NormalizeEmail 统一邮箱格式
func NormalizeEmail(email string) (string, error) {
	return normalizeEmail(email)
}

// randomNumericCode 生成均匀分布的数字验证码，允许前导零
func randomNumericCode(length int) (string, error) {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}
