package service

import (
	"unicode"

	"github.com/unilorin-sug/election/internal/config"
)

// PasswordPolicyError 密码不满足策略，携带 i18n 键与参数
type PasswordPolicyError struct {
	key  string
	args []interface{}
}

func (e *PasswordPolicyError) Error() string {
	return e.key
}

// Is 使 errors.Is(err, ErrWeakPassword) 成立
func (e *PasswordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

// Key i18n 键
func (e *PasswordPolicyError) Key() string {
	return e.key
}

// Args i18n 参数
func (e *PasswordPolicyError) Args() []interface{} {
	return e.args
}

// ValidatePassword 按策略校验密码，返回第一条不满足的规则
func ValidatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return &PasswordPolicyError{key: "error.password_min_length", args: []interface{}{policy.MinLength}}
	}

	var upper, lower, number, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			number = true
		default:
			special = true
		}
	}

	checks := []struct {
		required bool
		present  bool
		key      string
	}{
		{policy.RequireUpper, upper, "error.password_require_upper"},
		{policy.RequireLower, lower, "error.password_require_lower"},
		{policy.RequireNumber, number, "error.password_require_number"},
		{policy.RequireSpecial, special, "error.password_require_special"},
	}
	for _, check := range checks {
		if check.required && !check.present {
			return &PasswordPolicyError{key: check.key}
		}
	}
	return nil
}
