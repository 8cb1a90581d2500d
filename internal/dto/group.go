package dto

// ── 小组模块 DTO ──

// CreateGroupRequest 创建小组请求
type CreateGroupRequest struct {
	Name         string `json:"name"           binding:"required,min=1,max=200"`
	Period       string `json:"period"         binding:"required,min=1,max=100"`
	Year         int    `json:"year"           binding:"required,min=1900,max=9999"`
	Semester     int    `json:"semester"       binding:"required,min=1,max=2"`
	HealthUnitID int64  `json:"health_unit_id" binding:"required,min=1"`
	PreceptorID  int64  `json:"preceptor_id"   binding:"required,min=1"`
}

// GroupResponse 小组响应
type GroupResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Period       string `json:"period"`
	Year         int    `json:"year"`
	Semester     int    `json:"semester"`
	HealthUnitID int64  `json:"health_unit_id"`
	PreceptorID  int64  `json:"preceptor_id"`
	CreatedAt    string `json:"created_at"`
}

// ── 小组成员 ──

// AddGroupMemberRequest 学生加入小组请求
type AddGroupMemberRequest struct {
	StudentID int64 `json:"student_id" binding:"required,min=1"`
}

// GroupMembershipResponse 小组成员关系响应
type GroupMembershipResponse struct {
	ID        int64  `json:"id"`
	StudentID int64  `json:"student_id"`
	GroupID   int64  `json:"group_id"`
	CreatedAt string `json:"created_at"`
}

// ── 评估日 ──

// CreateEvaluationDateRequest 创建评估日请求
type CreateEvaluationDateRequest struct {
	Date        string  `json:"date"        binding:"required,datetime=2006-01-02"`
	Description *string `json:"description" binding:"omitempty,max=200"`
}

// EvaluationDateResponse 评估日响应
type EvaluationDateResponse struct {
	ID          int64   `json:"id"`
	GroupID     int64   `json:"group_id"`
	Date        string  `json:"date"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
}
