package model

// Evaluation 评估记录表 — 对应 evaluations
// 三项得分均可为空，取值 0-10；(student_id, evaluation_date_id) 唯一
type Evaluation struct {
	ID               int64    `gorm:"primaryKey;autoIncrement"                                   json:"id"`
	StudentID        int64    `gorm:"not null;uniqueIndex:uq_evaluations_student_date"           json:"student_id"`
	EvaluationDateID int64    `gorm:"not null;uniqueIndex:uq_evaluations_student_date;index"     json:"evaluation_date_id"`
	AttitudeScore    *float64 `gorm:"type:double precision"                                      json:"attitude_score"`
	SkillScore       *float64 `gorm:"type:double precision"                                      json:"skill_score"`
	CognitionScore   *float64 `gorm:"type:double precision"                                      json:"cognition_score"`
	Observations     *string  `gorm:"type:text"                                                  json:"observations"`
	TimestampedModel

	// 关联
	Student        *Student        `gorm:"foreignKey:StudentID;constraint:OnDelete:RESTRICT"        json:"-"`
	EvaluationDate *EvaluationDate `gorm:"foreignKey:EvaluationDateID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName 指定表名
func (Evaluation) TableName() string { return "evaluations" }
