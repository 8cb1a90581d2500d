package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"clinical-eval/backend/internal/dto"
	"clinical-eval/backend/internal/service"
	"clinical-eval/backend/pkg/response"
)

// EvaluationHandler 评估 HTTP 处理器
type EvaluationHandler struct {
	svc service.EvaluationService
}

// NewEvaluationHandler 创建 EvaluationHandler
func NewEvaluationHandler(svc service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{svc: svc}
}

// List 评估列表，可按 student_id / group_id 过滤
// GET /evaluations
func (h *EvaluationHandler) List(c *gin.Context) {
	var req dto.EvaluationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	evaluations, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		internalError(c, err)
		return
	}

	response.OK(c, evaluations)
}

// Get 评估详情
// GET /evaluations/:id
func (h *EvaluationHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	evaluation, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleEvaluationError(c, err)
		return
	}

	response.OK(c, evaluation)
}

// Create 创建评估
// POST /evaluations
func (h *EvaluationHandler) Create(c *gin.Context) {
	var req dto.CreateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	evaluation, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleEvaluationError(c, err)
		return
	}

	response.Created(c, evaluation)
}

// Update 部分更新评估，显式 null 清空字段
// PUT /evaluations/:id
func (h *EvaluationHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	evaluation, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleEvaluationError(c, err)
		return
	}

	response.OK(c, evaluation)
}

// Delete 删除评估
// DELETE /evaluations/:id
func (h *EvaluationHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handleEvaluationError(c, err)
		return
	}

	response.NoContent(c)
}

// handleEvaluationError 统一处理评估模块业务错误
func handleEvaluationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEvaluationNotFound):
		response.NotFound(c, 13001, "评估记录不存在")
	case errors.Is(err, service.ErrEvaluationDateNotFound):
		response.NotFound(c, 13002, "评估日不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 12004, "学生不存在")
	case errors.Is(err, service.ErrEvaluationExists):
		response.Conflict(c, 13003, "该学生在此评估日已有评估记录")
	default:
		internalError(c, err)
	}
}
