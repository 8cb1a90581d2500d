package model

// Student 学生表 — 对应 students
type Student struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"   json:"id"`
	Name         string  `gorm:"type:varchar(200);not null" json:"name"`
	Registration *string `gorm:"type:varchar(50)"           json:"registration"`
	CreatedModel
}

// TableName 指定表名
func (Student) TableName() string { return "students" }
