package public

import (
	"errors"

	"github.com/unilorin-sug/election/internal/http/response"
	"github.com/unilorin-sug/election/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var captchaErrorRules = []mappedHandlerError{
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, key: "error.captcha_required"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, key: "error.captcha_invalid"},
	{target: service.ErrCaptchaConfigInvalid, code: response.CodeInternal, key: "error.captcha_config_invalid"},
}

var emailErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrEmailDomainNotAllowed, code: response.CodeBadRequest, key: "error.email_domain_not_allowed"},
}

var sendCodeExtraErrorRules = []mappedHandlerError{
	{target: service.ErrDeliveryFailed, code: response.CodeServiceUnavailable, key: "error.code_send_failed"},
}

var verifyCodeExtraErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidOrExpiredCode, code: response.CodeBadRequest, key: "error.code_invalid"},
}

var studentRegisterErrorRules = []mappedHandlerError{
	{target: service.ErrStudentFieldsRequired, code: response.CodeBadRequest, key: "error.student_fields_required"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrInvalidWalletAddress, code: response.CodeBadRequest, key: "error.wallet_address_invalid"},
	{target: service.ErrDuplicateStudent, code: response.CodeConflict, key: "error.student_exists"},
}

var castVoteErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.candidate_not_found"},
	{target: service.ErrCandidateElectionMismatch, code: response.CodeBadRequest, key: "error.candidate_election_mismatch"},
	{target: service.ErrAlreadyVoted, code: response.CodeConflict, key: "error.already_voted"},
}

var electionLookupErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.election_not_found"},
}

func respondSendCodeError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(emailErrorRules, sendCodeExtraErrorRules), response.CodeInternal, "error.code_send_failed")
}

func respondVerifyCodeError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(emailErrorRules, verifyCodeExtraErrorRules), response.CodeInternal, "error.internal_error")
}

func respondCaptchaError(c *gin.Context, err error) {
	respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "error.captcha_verify_failed")
}
