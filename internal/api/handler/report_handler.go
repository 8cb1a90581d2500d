package handler

import (
	"github.com/gin-gonic/gin"

	"clinical-eval/backend/internal/service"
	"clinical-eval/backend/pkg/response"
)

// ReportHandler 小组报表 HTTP 处理器
type ReportHandler struct {
	svc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(svc service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// GetGroupReport 小组评估报表
// GET /groups/:id/report
func (h *ReportHandler) GetGroupReport(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	report, err := h.svc.BuildGroupReport(c.Request.Context(), groupID)
	if err != nil {
		handleGroupError(c, err)
		return
	}

	response.OK(c, report)
}
