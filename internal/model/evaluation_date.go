package model

import "time"

// EvaluationDate 评估日表 — 对应 evaluation_dates
type EvaluationDate struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID     int64     `gorm:"not null;index"           json:"group_id"`
	Date        time.Time `gorm:"type:date;not null"       json:"date"`
	Description *string   `gorm:"type:varchar(200)"        json:"description"`
	CreatedModel

	// 关联
	Group *StudentGroup `gorm:"foreignKey:GroupID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName 指定表名
func (EvaluationDate) TableName() string { return "evaluation_dates" }
