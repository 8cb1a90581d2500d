package handler

import (
	"github.com/gin-gonic/gin"

	"clinical-eval/backend/internal/dto"
	"clinical-eval/backend/internal/service"
	"clinical-eval/backend/pkg/response"
)

// PreceptorHandler 带教老师 HTTP 处理器
type PreceptorHandler struct {
	svc service.PreceptorService
}

// NewPreceptorHandler 创建 PreceptorHandler
func NewPreceptorHandler(svc service.PreceptorService) *PreceptorHandler {
	return &PreceptorHandler{svc: svc}
}

// List 带教老师列表
// GET /preceptors
func (h *PreceptorHandler) List(c *gin.Context) {
	preceptors, err := h.svc.List(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	response.OK(c, preceptors)
}

// Create 创建带教老师
// POST /preceptors
func (h *PreceptorHandler) Create(c *gin.Context) {
	var req dto.CreatePreceptorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	preceptor, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		internalError(c, err)
		return
	}

	response.Created(c, preceptor)
}
