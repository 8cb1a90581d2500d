package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"clinical-eval/backend/internal/dto"
	"clinical-eval/backend/internal/model"
	"clinical-eval/backend/internal/repository"
	pkgerrors "clinical-eval/backend/pkg/errors"
)

// ── 评估模块业务错误 ──

var (
	ErrEvaluationNotFound     = errors.New("评估记录不存在")
	ErrEvaluationDateNotFound = errors.New("评估日不存在")
	ErrEvaluationExists       = errors.New("该学生在此评估日已有评估记录")
)

// EvaluationService 评估业务接口
type EvaluationService interface {
	Create(ctx context.Context, req *dto.CreateEvaluationRequest) (*dto.EvaluationResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.EvaluationResponse, error)
	List(ctx context.Context, req *dto.EvaluationListRequest) ([]dto.EvaluationResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateEvaluationRequest) (*dto.EvaluationResponse, error)
	Delete(ctx context.Context, id int64) error
}

type evaluationService struct {
	repo   *repository.Repository
	cache  ReportCache
	logger *zap.Logger
	now    func() time.Time
}

// NewEvaluationService 创建 EvaluationService 实例
func NewEvaluationService(repo *repository.Repository, cache ReportCache, logger *zap.Logger) EvaluationService {
	return &evaluationService{repo: repo, cache: cache, logger: logger, now: time.Now}
}

// ────────────────────── Create ──────────────────────

func (s *evaluationService) Create(ctx context.Context, req *dto.CreateEvaluationRequest) (*dto.EvaluationResponse, error) {
	if _, err := s.repo.Student.GetByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Int64("id", req.StudentID), zap.Error(err))
		return nil, err
	}
	evalDate, err := s.repo.EvaluationDate.GetByID(ctx, req.EvaluationDateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEvaluationDateNotFound
		}
		s.logger.Error("查询评估日失败", zap.Int64("id", req.EvaluationDateID), zap.Error(err))
		return nil, err
	}

	exists, err := s.repo.Evaluation.Exists(ctx, req.StudentID, req.EvaluationDateID)
	if err != nil {
		s.logger.Error("查询评估记录失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrEvaluationExists
	}

	now := s.now().UTC()
	evaluation := &model.Evaluation{
		StudentID:        req.StudentID,
		EvaluationDateID: req.EvaluationDateID,
		AttitudeScore:    req.AttitudeScore,
		SkillScore:       req.SkillScore,
		CognitionScore:   req.CognitionScore,
		Observations:     req.Observations,
	}
	evaluation.CreatedAt = now
	evaluation.UpdatedAt = now

	if err := s.repo.Evaluation.Create(ctx, evaluation); err != nil {
		if errors.Is(pkgerrors.Translate(err), pkgerrors.ErrDuplicate) {
			return nil, ErrEvaluationExists
		}
		s.logger.Error("创建评估失败", zap.Error(err))
		return nil, err
	}

	invalidateReport(ctx, s.cache, s.logger, evalDate.GroupID)
	return toEvaluationResponse(evaluation), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *evaluationService) GetByID(ctx context.Context, id int64) (*dto.EvaluationResponse, error) {
	evaluation, err := s.repo.Evaluation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEvaluationNotFound
		}
		s.logger.Error("查询评估失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return toEvaluationResponse(evaluation), nil
}

// ────────────────────── List ──────────────────────

func (s *evaluationService) List(ctx context.Context, req *dto.EvaluationListRequest) ([]dto.EvaluationResponse, error) {
	evaluations, err := s.repo.Evaluation.List(ctx, &repository.EvaluationFilters{
		StudentID: req.StudentID,
		GroupID:   req.GroupID,
	})
	if err != nil {
		s.logger.Error("列出评估失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EvaluationResponse, 0, len(evaluations))
	for i := range evaluations {
		result = append(result, *toEvaluationResponse(&evaluations[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

// Update 只修改请求中出现的字段，并刷新 updated_at
func (s *evaluationService) Update(ctx context.Context, id int64, req *dto.UpdateEvaluationRequest) (*dto.EvaluationResponse, error) {
	var updated *model.Evaluation

	err := runInTx(ctx, s.repo, s.logger, func(txRepo *repository.Repository) error {
		evaluation, err := txRepo.Evaluation.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEvaluationNotFound
			}
			s.logger.Error("查询评估失败", zap.Int64("id", id), zap.Error(err))
			return err
		}

		if req.AttitudeScore.Set {
			evaluation.AttitudeScore = req.AttitudeScore.Value
		}
		if req.SkillScore.Set {
			evaluation.SkillScore = req.SkillScore.Value
		}
		if req.CognitionScore.Set {
			evaluation.CognitionScore = req.CognitionScore.Value
		}
		if req.Observations.Set {
			evaluation.Observations = req.Observations.Value
		}
		evaluation.UpdatedAt = s.now().UTC()

		if err := txRepo.Evaluation.Update(ctx, evaluation); err != nil {
			s.logger.Error("更新评估失败", zap.Int64("id", id), zap.Error(err))
			return err
		}
		updated = evaluation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateForDate(ctx, updated.EvaluationDateID)
	return toEvaluationResponse(updated), nil
}

// ────────────────────── Delete ──────────────────────

func (s *evaluationService) Delete(ctx context.Context, id int64) error {
	evaluation, err := s.repo.Evaluation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEvaluationNotFound
		}
		s.logger.Error("查询评估失败", zap.Int64("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Evaluation.Delete(ctx, id); err != nil {
		s.logger.Error("删除评估失败", zap.Int64("id", id), zap.Error(err))
		return err
	}

	s.invalidateForDate(ctx, evaluation.EvaluationDateID)
	return nil
}

// ── 内部辅助方法 ──

// invalidateForDate 根据评估日找到所属小组并清除报表缓存
func (s *evaluationService) invalidateForDate(ctx context.Context, evaluationDateID int64) {
	if s.cache == nil {
		return
	}
	evalDate, err := s.repo.EvaluationDate.GetByID(ctx, evaluationDateID)
	if err != nil {
		s.logger.Warn("查询评估日失败，跳过报表缓存清理", zap.Int64("evaluation_date_id", evaluationDateID), zap.Error(err))
		return
	}
	invalidateReport(ctx, s.cache, s.logger, evalDate.GroupID)
}
