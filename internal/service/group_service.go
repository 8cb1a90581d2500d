package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"clinical-eval/backend/internal/dto"
	"clinical-eval/backend/internal/model"
	"clinical-eval/backend/internal/repository"
	pkgerrors "clinical-eval/backend/pkg/errors"
)

// ── 小组模块业务错误 ──

var (
	ErrGroupNotFound      = errors.New("小组不存在")
	ErrHealthUnitNotFound = errors.New("卫生单位不存在")
	ErrPreceptorNotFound  = errors.New("带教老师不存在")
	ErrStudentNotFound    = errors.New("学生不存在")
	ErrMemberExists       = errors.New("学生已在该小组中")
	ErrInvalidDate        = errors.New("日期格式错误，应为 YYYY-MM-DD")
)

// GroupService 小组业务接口（含成员与评估日）
type GroupService interface {
	Create(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupResponse, error)
	List(ctx context.Context) ([]dto.GroupResponse, error)
	ListMembers(ctx context.Context, groupID int64) ([]dto.GroupMembershipResponse, error)
	AddMember(ctx context.Context, groupID int64, req *dto.AddGroupMemberRequest) (*dto.GroupMembershipResponse, error)
	ListEvaluationDates(ctx context.Context, groupID int64) ([]dto.EvaluationDateResponse, error)
	CreateEvaluationDate(ctx context.Context, groupID int64, req *dto.CreateEvaluationDateRequest) (*dto.EvaluationDateResponse, error)
}

type groupService struct {
	repo   *repository.Repository
	cache  ReportCache
	logger *zap.Logger
}

// NewGroupService 创建 GroupService 实例
func NewGroupService(repo *repository.Repository, cache ReportCache, logger *zap.Logger) GroupService {
	return &groupService{repo: repo, cache: cache, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *groupService) Create(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	if _, err := s.repo.HealthUnit.GetByID(ctx, req.HealthUnitID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHealthUnitNotFound
		}
		s.logger.Error("查询卫生单位失败", zap.Int64("id", req.HealthUnitID), zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.Preceptor.GetByID(ctx, req.PreceptorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPreceptorNotFound
		}
		s.logger.Error("查询带教老师失败", zap.Int64("id", req.PreceptorID), zap.Error(err))
		return nil, err
	}

	group := &model.StudentGroup{
		Name:         req.Name,
		Period:       req.Period,
		Year:         req.Year,
		Semester:     req.Semester,
		HealthUnitID: req.HealthUnitID,
		PreceptorID:  req.PreceptorID,
	}

	if err := s.repo.StudentGroup.Create(ctx, group); err != nil {
		s.logger.Error("创建小组失败", zap.Error(err))
		return nil, err
	}

	return toGroupResponse(group), nil
}

// ────────────────────── List ──────────────────────

func (s *groupService) List(ctx context.Context) ([]dto.GroupResponse, error) {
	groups, err := s.repo.StudentGroup.List(ctx)
	if err != nil {
		s.logger.Error("列出小组失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.GroupResponse, 0, len(groups))
	for i := range groups {
		result = append(result, *toGroupResponse(&groups[i]))
	}
	return result, nil
}

// ────────────────────── Members ──────────────────────

func (s *groupService) ListMembers(ctx context.Context, groupID int64) ([]dto.GroupMembershipResponse, error) {
	if err := s.ensureGroup(ctx, groupID); err != nil {
		return nil, err
	}

	memberships, err := s.repo.GroupMembership.ListByGroup(ctx, groupID)
	if err != nil {
		s.logger.Error("列出小组成员失败", zap.Int64("group_id", groupID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.GroupMembershipResponse, 0, len(memberships))
	for i := range memberships {
		result = append(result, *toMembershipResponse(&memberships[i]))
	}
	return result, nil
}

func (s *groupService) AddMember(ctx context.Context, groupID int64, req *dto.AddGroupMemberRequest) (*dto.GroupMembershipResponse, error) {
	if err := s.ensureGroup(ctx, groupID); err != nil {
		return nil, err
	}
	if _, err := s.repo.Student.GetByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Int64("id", req.StudentID), zap.Error(err))
		return nil, err
	}

	exists, err := s.repo.GroupMembership.Exists(ctx, req.StudentID, groupID)
	if err != nil {
		s.logger.Error("查询成员关系失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrMemberExists
	}

	membership := &model.GroupMembership{
		StudentID: req.StudentID,
		GroupID:   groupID,
	}
	if err := s.repo.GroupMembership.Create(ctx, membership); err != nil {
		// 唯一约束冲突同样视为重复加入
		if errors.Is(pkgerrors.Translate(err), pkgerrors.ErrDuplicate) {
			return nil, ErrMemberExists
		}
		s.logger.Error("添加小组成员失败", zap.Int64("group_id", groupID), zap.Error(err))
		return nil, err
	}

	invalidateReport(ctx, s.cache, s.logger, groupID)
	return toMembershipResponse(membership), nil
}

// ────────────────────── Evaluation dates ──────────────────────

func (s *groupService) ListEvaluationDates(ctx context.Context, groupID int64) ([]dto.EvaluationDateResponse, error) {
	if err := s.ensureGroup(ctx, groupID); err != nil {
		return nil, err
	}

	dates, err := s.repo.EvaluationDate.ListByGroup(ctx, groupID)
	if err != nil {
		s.logger.Error("列出评估日失败", zap.Int64("group_id", groupID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.EvaluationDateResponse, 0, len(dates))
	for i := range dates {
		result = append(result, *toEvaluationDateResponse(&dates[i]))
	}
	return result, nil
}

func (s *groupService) CreateEvaluationDate(ctx context.Context, groupID int64, req *dto.CreateEvaluationDateRequest) (*dto.EvaluationDateResponse, error) {
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, req.Date)
	}

	if err := s.ensureGroup(ctx, groupID); err != nil {
		return nil, err
	}

	evalDate := &model.EvaluationDate{
		GroupID:     groupID,
		Date:        date,
		Description: req.Description,
	}
	if err := s.repo.EvaluationDate.Create(ctx, evalDate); err != nil {
		s.logger.Error("创建评估日失败", zap.Int64("group_id", groupID), zap.Error(err))
		return nil, err
	}

	invalidateReport(ctx, s.cache, s.logger, groupID)
	return toEvaluationDateResponse(evalDate), nil
}

// ── 内部辅助方法 ──

func (s *groupService) ensureGroup(ctx context.Context, groupID int64) error {
	if _, err := s.repo.StudentGroup.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		s.logger.Error("查询小组失败", zap.Int64("id", groupID), zap.Error(err))
		return err
	}
	return nil
}
