package shared

import (
	"github.com/unilorin-sug/election/internal/http/response"
	"github.com/unilorin-sug/election/internal/i18n"
	"github.com/unilorin-sug/election/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 带 request_id 的日志实例
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if id := response.RequestID(c); id != "" {
		return logger.SW("request_id", id)
	}
	return logger.S()
}

// RespondError 按 i18n 键返回错误响应
func RespondError(c *gin.Context, code int, key string, err error) {
	msg := i18n.T(i18n.ResolveLocale(c), key)
	respond(c, response.WrapError(code, key, msg, err))
}

// RespondErrorWithMsg 返回已本地化的消息
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	respond(c, response.WrapError(code, "", msg, err))
}

// respond 5xx 或携带原始错误时记录日志
func respond(c *gin.Context, appErr *response.AppError) {
	switch {
	case appErr.Internal():
		RequestLog(c).Errorw("handler_error", appErr.LogFields()...)
	case appErr.Err != nil:
		RequestLog(c).Warnw("handler_error", appErr.LogFields()...)
	}
	response.Error(c, appErr.Code, appErr.Message)
}
