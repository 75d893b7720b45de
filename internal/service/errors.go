package service

import "errors"

// 通用错误
var (
	ErrNotFound = errors.New("not found")
)

// 邮箱验证码相关错误
var (
	ErrInvalidEmail              = errors.New("invalid email")
	ErrEmailDomainNotAllowed     = errors.New("email domain not allowed")
	ErrInvalidOrExpiredCode      = errors.New("invalid or expired code")
	ErrDeliveryFailed            = errors.New("verification code delivery failed")
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)

// 学生名册相关错误
var (
	ErrDuplicateStudent      = errors.New("student already registered")
	ErrStudentFieldsRequired = errors.New("student matric number, email and full name are required")
	ErrInvalidWalletAddress  = errors.New("invalid wallet address")
	ErrStudentNotVerified    = errors.New("student email not verified")
)

// 选举与候选人相关错误
var (
	ErrInvalidElection    = errors.New("invalid election")
	ErrInvalidPositions   = errors.New("positions must be non-empty and distinct")
	ErrUnknownPosition    = errors.New("position not in election")
	ErrDuplicateCandidacy = errors.New("candidate already registered for position")
)

// 投票相关错误
var (
	ErrCandidateElectionMismatch = errors.New("candidate does not belong to election")
	ErrAlreadyVoted              = errors.New("student already voted in election")
)

// 鉴权相关错误
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenExpired       = errors.New("token expired")
	ErrWeakPassword       = errors.New("password does not satisfy policy")
	ErrDuplicateAdmin     = errors.New("admin already exists")
	ErrInvalidUsername    = errors.New("invalid username")
)

// 验证码（图形）相关错误
var (
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
)
