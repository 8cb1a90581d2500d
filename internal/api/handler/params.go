package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"clinical-eval/backend/pkg/observability"
	"clinical-eval/backend/pkg/response"
)

// parseIDParam 解析路径中的正整数 ID，失败时写入 400 并返回 false
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, name+" 必须是正整数")
		return 0, false
	}
	return id, true
}

// internalError 上报非预期错误并返回 500
func internalError(c *gin.Context, err error) {
	observability.CaptureErr(err)
	response.InternalError(c)
}
