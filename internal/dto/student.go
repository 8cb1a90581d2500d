package dto

// ── 学生模块 DTO ──

// CreateStudentRequest 创建学生请求
type CreateStudentRequest struct {
	Name         string  `json:"name"         binding:"required,min=1,max=200"`
	Registration *string `json:"registration" binding:"omitempty,max=50"`
}

// StudentResponse 学生响应
type StudentResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Registration *string `json:"registration"`
	CreatedAt    string  `json:"created_at"`
}
