package dto

// ── 卫生单位模块 DTO ──

// CreateHealthUnitRequest 创建卫生单位请求
type CreateHealthUnitRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// HealthUnitResponse 卫生单位响应
type HealthUnitResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}
