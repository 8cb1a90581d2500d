package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ── 评估模块 DTO ──

const (
	MinScore = 0
	MaxScore = 10
)

// CreateEvaluationRequest 创建评估请求
type CreateEvaluationRequest struct {
	StudentID        int64    `json:"student_id"         binding:"required,min=1"`
	EvaluationDateID int64    `json:"evaluation_date_id" binding:"required,min=1"`
	AttitudeScore    *float64 `json:"attitude_score"     binding:"omitempty,min=0,max=10"`
	SkillScore       *float64 `json:"skill_score"        binding:"omitempty,min=0,max=10"`
	CognitionScore   *float64 `json:"cognition_score"    binding:"omitempty,min=0,max=10"`
	Observations     *string  `json:"observations"`
}

// UpdateEvaluationRequest 更新评估请求
// 仅处理请求体中出现的字段；显式 null 表示清空该字段
type UpdateEvaluationRequest struct {
	AttitudeScore  OptionalFloat  `json:"attitude_score"`
	SkillScore     OptionalFloat  `json:"skill_score"`
	CognitionScore OptionalFloat  `json:"cognition_score"`
	Observations   OptionalString `json:"observations"`
}

// Validate 校验分数范围
func (r *UpdateEvaluationRequest) Validate() error {
	scores := []struct {
		name  string
		value OptionalFloat
	}{
		{"attitude_score", r.AttitudeScore},
		{"skill_score", r.SkillScore},
		{"cognition_score", r.CognitionScore},
	}
	for _, s := range scores {
		if s.value.Value != nil && (*s.value.Value < MinScore || *s.value.Value > MaxScore) {
			return fmt.Errorf("%s 必须在 %d-%d 之间", s.name, MinScore, MaxScore)
		}
	}
	return nil
}

// EvaluationListRequest 评估列表查询参数，0 表示不过滤
type EvaluationListRequest struct {
	StudentID int64 `form:"student_id" binding:"omitempty,min=0"`
	GroupID   int64 `form:"group_id"   binding:"omitempty,min=0"`
}

// EvaluationResponse 评估响应
type EvaluationResponse struct {
	ID               int64    `json:"id"`
	StudentID        int64    `json:"student_id"`
	EvaluationDateID int64    `json:"evaluation_date_id"`
	AttitudeScore    *float64 `json:"attitude_score"`
	SkillScore       *float64 `json:"skill_score"`
	CognitionScore   *float64 `json:"cognition_score"`
	Observations     *string  `json:"observations"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
}

// ── 可区分“未提供”与“显式 null”的字段类型 ──

var jsonNull = []byte("null")

// OptionalFloat 可选数值字段
type OptionalFloat struct {
	Set   bool
	Value *float64
}

// UnmarshalJSON 出现即标记 Set，null 时 Value 为 nil
func (o *OptionalFloat) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		o.Value = nil
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// OptionalString 可选字符串字段
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON 出现即标记 Set，null 时 Value 为 nil
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		o.Value = nil
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}
