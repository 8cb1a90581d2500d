package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"clinical-eval/backend/internal/dto"
	"clinical-eval/backend/internal/model"
	"clinical-eval/backend/internal/repository"
)

// ImportSuccessMessage 导入成功提示
const ImportSuccessMessage = "Dados importados com sucesso!"

// ImportService 示例数据导入接口
//
// 每次调用都会新建一整套数据（卫生单位、带教老师、小组、学生、评估日与评估），
// 不做去重；全部写入在同一事务内完成。
type ImportService interface {
	ImportSpreadsheet(ctx context.Context) (*dto.ImportResponse, error)
}

type importService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewImportService 创建 ImportService 实例
func NewImportService(repo *repository.Repository, logger *zap.Logger) ImportService {
	return &importService{repo: repo, logger: logger, now: time.Now}
}

// ── 导入数据 ──

const (
	importHealthUnit = "UNIDADE DE SAÚDE DA FAMÍLIA DO BOM TEMPO"
	importPreceptor  = "DR Renê Carvalho de Brito"
	importGroupName  = "8ª ETAPA DO PIESF (Terças-feiras)"
	importPeriod     = "8ª ETAPA"
	importYear       = 2025
	importSemester   = 1
)

var importDates = []string{
	"2025-02-11", "2025-02-25", "2025-03-18", "2025-04-01", "2025-04-15",
	"2025-04-29", "2025-05-13", "2025-05-27", "2025-06-10",
}

// importStudents 学生姓名与每个评估日的分数（态度、技能、认知同分）
var importStudents = []struct {
	name   string
	scores []float64
}{
	{name: "ISABELA PEREIRA", scores: []float64{10, 10, 10, 10, 10, 7, 10, 10, 7}},
	{name: "INGRID MACEDO", scores: []float64{10, 10, 10, 10, 10, 10, 10, 10, 7}},
}

// ════════════════════════════════════════════════════════════
// ImportSpreadsheet — 写入固定数据集
// ════════════════════════════════════════════════════════════

func (s *importService) ImportSpreadsheet(ctx context.Context) (*dto.ImportResponse, error) {
	var groupID int64

	err := runInTx(ctx, s.repo, s.logger, func(txRepo *repository.Repository) error {
		unit := &model.HealthUnit{Name: importHealthUnit}
		if err := txRepo.HealthUnit.Create(ctx, unit); err != nil {
			return fmt.Errorf("创建卫生单位失败: %w", err)
		}

		preceptor := &model.Preceptor{Name: importPreceptor}
		if err := txRepo.Preceptor.Create(ctx, preceptor); err != nil {
			return fmt.Errorf("创建带教老师失败: %w", err)
		}

		group := &model.StudentGroup{
			Name:         importGroupName,
			Period:       importPeriod,
			Year:         importYear,
			Semester:     importSemester,
			HealthUnitID: unit.ID,
			PreceptorID:  preceptor.ID,
		}
		if err := txRepo.StudentGroup.Create(ctx, group); err != nil {
			return fmt.Errorf("创建小组失败: %w", err)
		}

		dates := make([]*model.EvaluationDate, 0, len(importDates))
		for _, raw := range importDates {
			day, err := dto.ParseDate(raw)
			if err != nil {
				return fmt.Errorf("%w: %s", ErrInvalidDate, raw)
			}
			d := &model.EvaluationDate{GroupID: group.ID, Date: day}
			if err := txRepo.EvaluationDate.Create(ctx, d); err != nil {
				return fmt.Errorf("创建评估日失败: %w", err)
			}
			dates = append(dates, d)
		}

		now := s.now().UTC()
		for _, st := range importStudents {
			student := &model.Student{Name: st.name}
			if err := txRepo.Student.Create(ctx, student); err != nil {
				return fmt.Errorf("创建学生失败: %w", err)
			}
			if err := txRepo.GroupMembership.Create(ctx, &model.GroupMembership{
				StudentID: student.ID,
				GroupID:   group.ID,
			}); err != nil {
				return fmt.Errorf("添加小组成员失败: %w", err)
			}

			for i, score := range st.scores {
				e := &model.Evaluation{
					StudentID:        student.ID,
					EvaluationDateID: dates[i].ID,
					AttitudeScore:    &score,
					SkillScore:       &score,
					CognitionScore:   &score,
				}
				e.CreatedAt = now
				e.UpdatedAt = now
				if err := txRepo.Evaluation.Create(ctx, e); err != nil {
					return fmt.Errorf("创建评估失败: %w", err)
				}
			}
		}

		groupID = group.ID
		return nil
	})
	if err != nil {
		s.logger.Error("导入数据失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("导入数据完成", zap.Int64("group_id", groupID))
	return &dto.ImportResponse{Message: ImportSuccessMessage, GroupID: groupID}, nil
}
