package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinical-eval/backend/internal/service"
	"clinical-eval/backend/pkg/observability"
	"clinical-eval/backend/pkg/response"
)

// ImportHandler 示例数据导入 HTTP 处理器
type ImportHandler struct {
	svc service.ImportService
}

// NewImportHandler 创建 ImportHandler
func NewImportHandler(svc service.ImportService) *ImportHandler {
	return &ImportHandler{svc: svc}
}

// ImportSpreadsheet 导入固定数据集；失败时整体回滚并返回 500
// POST /import-spreadsheet
func (h *ImportHandler) ImportSpreadsheet(c *gin.Context) {
	result, err := h.svc.ImportSpreadsheet(c.Request.Context())
	if err != nil {
		observability.CaptureErr(err)
		response.Error(c, http.StatusInternalServerError, 14001, err.Error())
		return
	}

	response.Created(c, result)
}
