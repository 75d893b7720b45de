package admin

import (
	"github.com/unilorin-sug/election/internal/constants"
	handlershared "github.com/unilorin-sug/election/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.ContextID(c, constants.ContextKeyAdminID, "error.admin_id_invalid", "error.admin_id_type_invalid")
}

// currentAdminID 读取当前管理员 ID，不写响应
func currentAdminID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(constants.ContextKeyAdminID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok && id > 0
}

func currentUsername(c *gin.Context) string {
	if value, ok := c.Get(constants.ContextKeyAdminUsername); ok {
		if username, ok := value.(string); ok {
			return username
		}
	}
	return ""
}
