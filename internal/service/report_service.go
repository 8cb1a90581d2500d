package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"clinical-eval/backend/internal/dto"
	"clinical-eval/backend/internal/model"
	"clinical-eval/backend/internal/repository"
	"clinical-eval/backend/pkg/metrics"
)

// ReportService 小组报表业务接口
type ReportService interface {
	// BuildGroupReport 汇总小组成员、评估日与各学生的评估及平均分
	BuildGroupReport(ctx context.Context, groupID int64) (*dto.ReportResponse, error)
}

type reportService struct {
	repo   *repository.Repository
	cache  ReportCache
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例，cache 为 nil 时不缓存
func NewReportService(repo *repository.Repository, cache ReportCache, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, cache: cache, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// BuildGroupReport — 小组评估报表
// ═══════════════════════════════════════════════════════════
//
// 输出结构：
//   - group: 小组信息
//   - students: 按加入顺序排列，每人附带 evaluations（evaluation_date_id → 评估）、
//     三项平均分 averages 与总平均分 overall_average
//   - evaluation_dates: 按日期升序，同日按 id 升序
//
// 没有分数时平均分为 null；未评估的日期不出现在 evaluations 中。

func (s *reportService) BuildGroupReport(ctx context.Context, groupID int64) (*dto.ReportResponse, error) {
	if cached := s.loadCached(ctx, groupID); cached != nil {
		return cached, nil
	}
	generation, cacheable := s.cacheGeneration(ctx, groupID)

	// 1. 小组
	group, err := s.repo.StudentGroup.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		s.logger.Error("查询小组失败", zap.Int64("id", groupID), zap.Error(err))
		return nil, err
	}

	// 2. 成员
	memberships, err := s.repo.GroupMembership.ListByGroup(ctx, groupID)
	if err != nil {
		s.logger.Error("查询小组成员失败", zap.Int64("group_id", groupID), zap.Error(err))
		return nil, err
	}
	studentIDs := make([]int64, 0, len(memberships))
	for _, m := range memberships {
		studentIDs = append(studentIDs, m.StudentID)
	}
	students, err := s.repo.Student.ListByIDs(ctx, studentIDs)
	if err != nil {
		s.logger.Error("查询学生失败", zap.Int64("group_id", groupID), zap.Error(err))
		return nil, err
	}
	studentByID := make(map[int64]*model.Student, len(students))
	for i := range students {
		studentByID[students[i].ID] = &students[i]
	}

	// 3. 评估日
	dates, err := s.repo.EvaluationDate.ListByGroup(ctx, groupID)
	if err != nil {
		s.logger.Error("查询评估日失败", zap.Int64("group_id", groupID), zap.Error(err))
		return nil, err
	}

	// 4. 评估，按学生归类
	evaluations, err := s.repo.Evaluation.ListByGroup(ctx, groupID)
	if err != nil {
		s.logger.Error("查询评估失败", zap.Int64("group_id", groupID), zap.Error(err))
		return nil, err
	}
	byStudent := make(map[int64][]*model.Evaluation)
	for i := range evaluations {
		e := &evaluations[i]
		byStudent[e.StudentID] = append(byStudent[e.StudentID], e)
	}

	// 5. 组装
	report := &dto.ReportResponse{
		Group:           *toGroupResponse(group),
		Students:        make([]dto.ReportStudent, 0, len(memberships)),
		EvaluationDates: make([]dto.EvaluationDateResponse, 0, len(dates)),
	}
	for i := range dates {
		report.EvaluationDates = append(report.EvaluationDates, *toEvaluationDateResponse(&dates[i]))
	}
	for _, m := range memberships {
		student, ok := studentByID[m.StudentID]
		if !ok {
			continue
		}
		report.Students = append(report.Students, buildReportStudent(student, byStudent[student.ID]))
	}

	if cacheable {
		s.storeCached(ctx, groupID, generation, report)
	}
	return report, nil
}

// buildReportStudent 计算单个学生的评估映射与平均分
func buildReportStudent(student *model.Student, evaluations []*model.Evaluation) dto.ReportStudent {
	rs := dto.ReportStudent{
		ID:           student.ID,
		Name:         student.Name,
		Registration: student.Registration,
		CreatedAt:    dto.FormatTimestamp(student.CreatedAt),
		Evaluations:  make(map[int64]dto.EvaluationResponse, len(evaluations)),
	}

	var attitude, skill, cognition []float64
	for _, e := range evaluations {
		rs.Evaluations[e.EvaluationDateID] = *toEvaluationResponse(e)
		if e.AttitudeScore != nil {
			attitude = append(attitude, *e.AttitudeScore)
		}
		if e.SkillScore != nil {
			skill = append(skill, *e.SkillScore)
		}
		if e.CognitionScore != nil {
			cognition = append(cognition, *e.CognitionScore)
		}
	}

	rs.Averages = dto.ScoreAverages{
		Attitude:  average(attitude),
		Skill:     average(skill),
		Cognition: average(cognition),
	}

	all := make([]float64, 0, len(attitude)+len(skill)+len(cognition))
	all = append(all, attitude...)
	all = append(all, skill...)
	all = append(all, cognition...)
	rs.OverallAverage = average(all)

	return rs
}

// average 算术平均，空切片返回 nil
func average(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	avg := sum / float64(len(values))
	return &avg
}

// ── 缓存 ──

func (s *reportService) loadCached(ctx context.Context, groupID int64) *dto.ReportResponse {
	if s.cache == nil {
		return nil
	}
	data, ok, err := s.cache.GetReport(ctx, groupID)
	if err != nil {
		metrics.ObserveReportCache("error")
		s.logger.Warn("读取报表缓存失败", zap.Int64("group_id", groupID), zap.Error(err))
		return nil
	}
	if !ok {
		metrics.ObserveReportCache("miss")
		return nil
	}

	var report dto.ReportResponse
	if err := json.Unmarshal(data, &report); err != nil {
		metrics.ObserveReportCache("error")
		s.logger.Warn("报表缓存内容无效", zap.Int64("group_id", groupID), zap.Error(err))
		return nil
	}
	metrics.ObserveReportCache("hit")
	return &report
}

// cacheGeneration 在读取数据库之前取得缓存代数，读取失败时本次不回填
func (s *reportService) cacheGeneration(ctx context.Context, groupID int64) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	generation, err := s.cache.ReportGeneration(ctx, groupID)
	if err != nil {
		s.logger.Warn("读取报表缓存代数失败", zap.Int64("group_id", groupID), zap.Error(err))
		return 0, false
	}
	return generation, true
}

func (s *reportService) storeCached(ctx context.Context, groupID, generation int64, report *dto.ReportResponse) {
	data, err := json.Marshal(report)
	if err != nil {
		s.logger.Warn("序列化报表失败", zap.Int64("group_id", groupID), zap.Error(err))
		return
	}
	stored, err := s.cache.SetReport(ctx, groupID, generation, data)
	if err != nil {
		s.logger.Warn("写入报表缓存失败", zap.Int64("group_id", groupID), zap.Error(err))
		return
	}
	if !stored {
		s.logger.Debug("报表构建期间数据已变更，跳过缓存", zap.Int64("group_id", groupID))
	}
}

// invalidateReport 小组数据变更后清除报表缓存，失败只记录日志
func invalidateReport(ctx context.Context, cache ReportCache, logger *zap.Logger, groupID int64) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateReport(ctx, groupID); err != nil {
		logger.Warn("清除报表缓存失败", zap.Int64("group_id", groupID), zap.Error(err))
	}
}
