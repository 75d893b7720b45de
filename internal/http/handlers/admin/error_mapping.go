package admin

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

var captchaErrorRules = []mappedHandlerError{
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, key: "error.captcha_required"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, key: "error.captcha_invalid"},
	{target: service.ErrCaptchaConfigInvalid, code: response.CodeInternal, key: "error.captcha_config_invalid"},
}

var adminLoginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.login_invalid"},
}

var electionCreateErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidElection, code: response.CodeBadRequest, key: "error.election_invalid"},
	{target: service.ErrInvalidPositions, code: response.CodeBadRequest, key: "error.positions_invalid"},
}

var electionLookupErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.election_not_found"},
}

var candidateCreateErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.not_found"},
	{target: service.ErrUnknownPosition, code: response.CodeBadRequest, key: "error.position_unknown"},
	{target: service.ErrDuplicateCandidacy, code: response.CodeConflict, key: "error.candidacy_exists"},
}

var studentCreateErrorRules = []mappedHandlerError{
	{target: service.ErrStudentFieldsRequired, code: response.CodeBadRequest, key: "error.student_fields_required"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrInvalidWalletAddress, code: response.CodeBadRequest, key: "error.wallet_address_invalid"},
	{target: service.ErrDuplicateStudent, code: response.CodeConflict, key: "error.student_exists"},
}

var studentLookupErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.student_not_found"},
}

var adminCreateErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidUsername, code: response.CodeBadRequest, key: "error.username_invalid"},
	{target: service.ErrDuplicateAdmin, code: response.CodeConflict, key: "error.admin_exists"},
}
