package service

import (
	"clinical-eval/backend/internal/dto"
	"clinical-eval/backend/internal/model"
)

// ── model → dto 转换 ──

func toHealthUnitResponse(unit *model.HealthUnit) *dto.HealthUnitResponse {
	return &dto.HealthUnitResponse{
		ID:        unit.ID,
		Name:      unit.Name,
		CreatedAt: dto.FormatTimestamp(unit.CreatedAt),
	}
}

func toPreceptorResponse(p *model.Preceptor) *dto.PreceptorResponse {
	return &dto.PreceptorResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		CreatedAt: dto.FormatTimestamp(p.CreatedAt),
	}
}

func toStudentResponse(s *model.Student) *dto.StudentResponse {
	return &dto.StudentResponse{
		ID:           s.ID,
		Name:         s.Name,
		Registration: s.Registration,
		CreatedAt:    dto.FormatTimestamp(s.CreatedAt),
	}
}

func toGroupResponse(g *model.StudentGroup) *dto.GroupResponse {
	return &dto.GroupResponse{
		ID:           g.ID,
		Name:         g.Name,
		Period:       g.Period,
		Year:         g.Year,
		Semester:     g.Semester,
		HealthUnitID: g.HealthUnitID,
		PreceptorID:  g.PreceptorID,
		CreatedAt:    dto.FormatTimestamp(g.CreatedAt),
	}
}

func toMembershipResponse(m *model.GroupMembership) *dto.GroupMembershipResponse {
	return &dto.GroupMembershipResponse{
		ID:        m.ID,
		StudentID: m.StudentID,
		GroupID:   m.GroupID,
		CreatedAt: dto.FormatTimestamp(m.CreatedAt),
	}
}

func toEvaluationDateResponse(d *model.EvaluationDate) *dto.EvaluationDateResponse {
	return &dto.EvaluationDateResponse{
		ID:          d.ID,
		GroupID:     d.GroupID,
		Date:        dto.FormatDate(d.Date),
		Description: d.Description,
		CreatedAt:   dto.FormatTimestamp(d.CreatedAt),
	}
}

func toEvaluationResponse(e *model.Evaluation) *dto.EvaluationResponse {
	return &dto.EvaluationResponse{
		ID:               e.ID,
		StudentID:        e.StudentID,
		EvaluationDateID: e.EvaluationDateID,
		AttitudeScore:    e.AttitudeScore,
		SkillScore:       e.SkillScore,
		CognitionScore:   e.CognitionScore,
		Observations:     e.Observations,
		CreatedAt:        dto.FormatTimestamp(e.CreatedAt),
		UpdatedAt:        dto.FormatTimestamp(e.UpdatedAt),
	}
}
