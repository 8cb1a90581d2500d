package model

// StudentGroup 实习小组表 — 对应 student_groups
// 一个小组在某学年学期内归属一个卫生单位和一名带教老师
type StudentGroup struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"   json:"id"`
	Name         string `gorm:"type:varchar(200);not null" json:"name"`
	Period       string `gorm:"type:varchar(100);not null" json:"period"`
	Year         int    `gorm:"not null"                   json:"year"`
	Semester     int    `gorm:"type:smallint;not null"     json:"semester"`
	HealthUnitID int64  `gorm:"not null;index"             json:"health_unit_id"`
	PreceptorID  int64  `gorm:"not null;index"             json:"preceptor_id"`
	CreatedModel

	// 关联
	HealthUnit *HealthUnit `gorm:"foreignKey:HealthUnitID;constraint:OnDelete:RESTRICT" json:"-"`
	Preceptor  *Preceptor  `gorm:"foreignKey:PreceptorID;constraint:OnDelete:RESTRICT"  json:"-"`
}

// TableName 指定表名
func (StudentGroup) TableName() string { return "student_groups" }
