package admin

import handlershared "github.com/unilorin-sug/election/internal/http/handlers/shared"

// CaptchaPayloadRequest 管理端验证码请求载荷
type CaptchaPayloadRequest = handlershared.CaptchaPayloadRequest
