package model

// Preceptor 带教老师表 — 对应 preceptors
type Preceptor struct {
	ID    int64   `gorm:"primaryKey;autoIncrement"   json:"id"`
	Name  string  `gorm:"type:varchar(200);not null" json:"name"`
	Email *string `gorm:"type:varchar(255)"          json:"email"`
	CreatedModel
}

// TableName 指定表名
func (Preceptor) TableName() string { return "preceptors" }
