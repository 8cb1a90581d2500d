package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"clinical-eval/backend/internal/dto"
	"clinical-eval/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestService(cache ReportCache) (*Service, *mockStore) {
	store := newMockStore()
	svc := NewService(newMockRepository(store), cache, zap.NewNop())
	return svc, store
}

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

// seedGroup 创建卫生单位、带教老师与小组，返回小组 ID
func seedGroup(t *testing.T, svc *Service) int64 {
	t.Helper()
	ctx := context.Background()

	unit, err := svc.HealthUnit.Create(ctx, &dto.CreateHealthUnitRequest{Name: "USF Centro"})
	if err != nil {
		t.Fatalf("创建卫生单位应成功: %v", err)
	}
	preceptor, err := svc.Preceptor.Create(ctx, &dto.CreatePreceptorRequest{Name: "Dra. Ana"})
	if err != nil {
		t.Fatalf("创建带教老师应成功: %v", err)
	}
	group, err := svc.Group.Create(ctx, &dto.CreateGroupRequest{
		Name:         "Grupo A",
		Period:       "8ª ETAPA",
		Year:         2025,
		Semester:     1,
		HealthUnitID: unit.ID,
		PreceptorID:  preceptor.ID,
	})
	if err != nil {
		t.Fatalf("创建小组应成功: %v", err)
	}
	return group.ID
}

func seedMember(t *testing.T, svc *Service, groupID int64, name string) int64 {
	t.Helper()
	ctx := context.Background()

	st, err := svc.Student.Create(ctx, &dto.CreateStudentRequest{Name: name})
	if err != nil {
		t.Fatalf("创建学生应成功: %v", err)
	}
	if _, err := svc.Group.AddMember(ctx, groupID, &dto.AddGroupMemberRequest{StudentID: st.ID}); err != nil {
		t.Fatalf("加入小组应成功: %v", err)
	}
	return st.ID
}

func seedDate(t *testing.T, svc *Service, groupID int64, date string) int64 {
	t.Helper()
	d, err := svc.Group.CreateEvaluationDate(context.Background(), groupID, &dto.CreateEvaluationDateRequest{Date: date})
	if err != nil {
		t.Fatalf("创建评估日 %s 应成功: %v", date, err)
	}
	return d.ID
}

func seedEvaluation(t *testing.T, svc *Service, studentID, dateID int64, a, s, c *float64) int64 {
	t.Helper()
	e, err := svc.Evaluation.Create(context.Background(), &dto.CreateEvaluationRequest{
		StudentID:        studentID,
		EvaluationDateID: dateID,
		AttitudeScore:    a,
		SkillScore:       s,
		CognitionScore:   c,
	})
	if err != nil {
		t.Fatalf("创建评估应成功: %v", err)
	}
	return e.ID
}

func countMemberships(store *mockStore, groupID int64) int {
	n := 0
	for _, gm := range store.memberships {
		if gm.GroupID == groupID {
			n++
		}
	}
	return n
}

func datesOf(store *mockStore, groupID int64) []*model.EvaluationDate {
	var result []*model.EvaluationDate
	for _, k := range sortedKeys(store.dates) {
		if d := store.dates[k]; d.GroupID == groupID {
			result = append(result, d)
		}
	}
	return result
}
