package public

import handlershared "github.com/unilorin-sug/election/internal/http/handlers/shared"

// CaptchaPayloadRequest 验证码请求载荷
// image: captcha_id + captcha_code
// 未启用场景允许空载荷，由 service 层根据配置判定是否必填
type CaptchaPayloadRequest = handlershared.CaptchaPayloadRequest
