package public

import (
	"github.com/unilorin-sug/election/internal/constants"
	handlershared "github.com/unilorin-sug/election/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getStudentID(c *gin.Context) (uint, bool) {
	return handlershared.ContextID(c, constants.ContextKeyStudentID, "error.student_id_invalid", "error.student_id_type_invalid")
}
