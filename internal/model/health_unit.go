package model

// HealthUnit 卫生单位表 — 对应 health_units
type HealthUnit struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"   json:"id"`
	Name string `gorm:"type:varchar(200);not null" json:"name"`
	CreatedModel
}

// TableName 指定表名
func (HealthUnit) TableName() string { return "health_units" }
