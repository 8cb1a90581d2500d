package handler

import (
	"github.com/gin-gonic/gin"

	"clinical-eval/backend/internal/dto"
	"clinical-eval/backend/internal/service"
	"clinical-eval/backend/pkg/response"
)

// HealthUnitHandler 卫生单位 HTTP 处理器
type HealthUnitHandler struct {
	svc service.HealthUnitService
}

// NewHealthUnitHandler 创建 HealthUnitHandler
func NewHealthUnitHandler(svc service.HealthUnitService) *HealthUnitHandler {
	return &HealthUnitHandler{svc: svc}
}

// List 卫生单位列表
// GET /health-units
func (h *HealthUnitHandler) List(c *gin.Context) {
	units, err := h.svc.List(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	response.OK(c, units)
}

// Create 创建卫生单位
// POST /health-units
func (h *HealthUnitHandler) Create(c *gin.Context) {
	var req dto.CreateHealthUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	unit, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		internalError(c, err)
		return
	}

	response.Created(c, unit)
}
