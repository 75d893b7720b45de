package public

import (
	"time"

	"github.com/unilorin-sug/election/internal/constants"
	"github.com/unilorin-sug/election/internal/http/response"
	"github.com/unilorin-sug/election/internal/i18n"
	"github.com/unilorin-sug/election/internal/service"

	"github.com/gin-gonic/gin"
)

// SendCodeRequest 发送邮箱验证码请求
type SendCodeRequest struct {
	Email          string                `json:"email" binding:"required"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// SendCode 发送邮箱一次性验证码
func (h *Handler) SendCode(c *gin.Context) {
	var req SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if h.CaptchaService != nil {
		if err := h.CaptchaService.Verify(constants.CaptchaSceneSendCode, req.CaptchaPayload.ToServicePayload()); err != nil {
			respondCaptchaError(c, err)
			return
		}
	}

	locale := i18n.ResolveLocale(c)
	if err := h.VerificationService.RequestCode(c.Request.Context(), req.Email, locale); err != nil {
		respondSendCodeError(c, err)
		return
	}

	response.SuccessWithMsg(c, i18n.T(locale, "verify.code_sent"), gin.H{
		"sent":           true,
		"expire_minutes": h.VerificationService.ExpireMinutes(),
	})
}

// VerifyCodeRequest 校验邮箱验证码请求
type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// VerifyCode 校验验证码；邮箱已登记为学生时标记已验证并签发投票令牌
func (h *Handler) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	student, err := h.StudentService.VerifyEmailAndMark(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		respondVerifyCodeError(c, err)
		return
	}

	locale := i18n.ResolveLocale(c)
	data := gin.H{"verified": true}
	if student != nil {
		token, expiresAt, err := h.StudentSessionService.Issue(student)
		if err != nil {
			respondError(c, response.CodeInternal, "error.internal_error", err)
			return
		}
		data["student"] = student
		data["token"] = token
		data["expires_at"] = expiresAt.Format(time.RFC3339)
	}
	response.SuccessWithMsg(c, i18n.T(locale, "verify.code_verified"), data)
}

// StudentRegisterRequest 学生自助登记请求
type StudentRegisterRequest struct {
	MatricNumber  string `json:"matric_number" binding:"required"`
	Email         string `json:"email" binding:"required"`
	FullName      string `json:"full_name" binding:"required"`
	Faculty       string `json:"faculty"`
	Department    string `json:"department"`
	Level         string `json:"level"`
	WalletAddress string `json:"wallet_address"`
}

// RegisterStudent 学生自助登记，登记后需通过邮箱验证码完成验证
func (h *Handler) RegisterStudent(c *gin.Context) {
	var req StudentRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	student, err := h.StudentService.RegisterStudent(service.RegisterStudentInput{
		MatricNumber:  req.MatricNumber,
		Email:         req.Email,
		FullName:      req.FullName,
		Faculty:       req.Faculty,
		Department:    req.Department,
		Level:         req.Level,
		WalletAddress: req.WalletAddress,
	})
	if err != nil {
		respondWithMappedError(c, err, studentRegisterErrorRules, response.CodeInternal, "error.register_failed")
		return
	}

	response.Success(c, student)
}
