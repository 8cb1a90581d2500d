package handler

import (
	"github.com/gin-gonic/gin"

	"clinical-eval/backend/internal/dto"
	"clinical-eval/backend/internal/service"
	"clinical-eval/backend/pkg/response"
)

// StudentHandler 学生 HTTP 处理器
type StudentHandler struct {
	svc service.StudentService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(svc service.StudentService) *StudentHandler {
	return &StudentHandler{svc: svc}
}

// List 学生列表
// GET /students
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.svc.List(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	response.OK(c, students)
}

// Create 创建学生
// POST /students
func (h *StudentHandler) Create(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	student, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		internalError(c, err)
		return
	}

	response.Created(c, student)
}
