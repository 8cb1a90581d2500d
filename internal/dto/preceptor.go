package dto

// ── 带教老师模块 DTO ──

// CreatePreceptorRequest 创建带教老师请求
type CreatePreceptorRequest struct {
	Name  string  `json:"name"  binding:"required,min=1,max=200"`
	Email *string `json:"email" binding:"omitempty,email,max=255"`
}

// PreceptorResponse 带教老师响应
type PreceptorResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	CreatedAt string  `json:"created_at"`
}
