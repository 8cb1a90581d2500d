package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"clinical-eval/backend/internal/dto"
	"clinical-eval/backend/internal/service"
	"clinical-eval/backend/pkg/response"
)

// GroupHandler 小组、成员与评估日 HTTP 处理器
type GroupHandler struct {
	svc service.GroupService
}

// NewGroupHandler 创建 GroupHandler
func NewGroupHandler(svc service.GroupService) *GroupHandler {
	return &GroupHandler{svc: svc}
}

// List 小组列表
// GET /groups
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.svc.List(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	response.OK(c, groups)
}

// Create 创建小组
// POST /groups
func (h *GroupHandler) Create(c *gin.Context) {
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	group, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleGroupError(c, err)
		return
	}

	response.Created(c, group)
}

// ListMembers 小组成员关系列表
// GET /groups/:id/students
func (h *GroupHandler) ListMembers(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	members, err := h.svc.ListMembers(c.Request.Context(), groupID)
	if err != nil {
		handleGroupError(c, err)
		return
	}

	response.OK(c, members)
}

// AddMember 学生加入小组
// POST /groups/:id/students
func (h *GroupHandler) AddMember(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AddGroupMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	membership, err := h.svc.AddMember(c.Request.Context(), groupID, &req)
	if err != nil {
		handleGroupError(c, err)
		return
	}

	response.Created(c, membership)
}

// ListEvaluationDates 小组评估日列表（按日期升序）
// GET /groups/:id/evaluation-dates
func (h *GroupHandler) ListEvaluationDates(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	dates, err := h.svc.ListEvaluationDates(c.Request.Context(), groupID)
	if err != nil {
		handleGroupError(c, err)
		return
	}

	response.OK(c, dates)
}

// CreateEvaluationDate 创建评估日
// POST /groups/:id/evaluation-dates
func (h *GroupHandler) CreateEvaluationDate(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateEvaluationDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	date, err := h.svc.CreateEvaluationDate(c.Request.Context(), groupID, &req)
	if err != nil {
		handleGroupError(c, err)
		return
	}

	response.Created(c, date)
}

// handleGroupError 统一处理小组模块业务错误
func handleGroupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, 12001, "小组不存在")
	case errors.Is(err, service.ErrHealthUnitNotFound):
		response.NotFound(c, 12002, "卫生单位不存在")
	case errors.Is(err, service.ErrPreceptorNotFound):
		response.NotFound(c, 12003, "带教老师不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 12004, "学生不存在")
	case errors.Is(err, service.ErrMemberExists):
		response.Conflict(c, 12005, "学生已在该小组中")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 12006, err.Error())
	default:
		internalError(c, err)
	}
}
