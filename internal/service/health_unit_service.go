package service

import (
	"context"

	"go.uber.org/zap"

	"clinical-eval/backend/internal/dto"
	"clinical-eval/backend/internal/model"
	"clinical-eval/backend/internal/repository"
)

// HealthUnitService 卫生单位业务接口
type HealthUnitService interface {
	Create(ctx context.Context, req *dto.CreateHealthUnitRequest) (*dto.HealthUnitResponse, error)
	List(ctx context.Context) ([]dto.HealthUnitResponse, error)
}

type healthUnitService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewHealthUnitService 创建 HealthUnitService 实例
func NewHealthUnitService(repo *repository.Repository, logger *zap.Logger) HealthUnitService {
	return &healthUnitService{repo: repo, logger: logger}
}

func (s *healthUnitService) Create(ctx context.Context, req *dto.CreateHealthUnitRequest) (*dto.HealthUnitResponse, error) {
	unit := &model.HealthUnit{Name: req.Name}

	if err := s.repo.HealthUnit.Create(ctx, unit); err != nil {
		s.logger.Error("创建卫生单位失败", zap.Error(err))
		return nil, err
	}

	return toHealthUnitResponse(unit), nil
}

func (s *healthUnitService) List(ctx context.Context) ([]dto.HealthUnitResponse, error) {
	units, err := s.repo.HealthUnit.List(ctx)
	if err != nil {
		s.logger.Error("列出卫生单位失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.HealthUnitResponse, 0, len(units))
	for i := range units {
		result = append(result, *toHealthUnitResponse(&units[i]))
	}
	return result, nil
}
