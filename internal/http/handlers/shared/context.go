package shared

import (
	"github.com/unilorin-sug/election/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ContextID 读取鉴权中间件写入的主体 ID。
// 缺失视为未登录；类型不符属于中间件缺陷，返回 500。
func ContextID(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	id, ok := value.(uint)
	if !ok {
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}
	if id == 0 {
		RespondError(c, response.CodeBadRequest, invalidKey, nil)
		return 0, false
	}
	return id, true
}
