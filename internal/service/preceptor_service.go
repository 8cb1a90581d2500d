package service

import (
	"context"

	"go.uber.org/zap"

	"clinical-eval/backend/internal/dto"
	"clinical-eval/backend/internal/model"
	"clinical-eval/backend/internal/repository"
)

// PreceptorService 带教老师业务接口
type PreceptorService interface {
	Create(ctx context.Context, req *dto.CreatePreceptorRequest) (*dto.PreceptorResponse, error)
	List(ctx context.Context) ([]dto.PreceptorResponse, error)
}

type preceptorService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPreceptorService 创建 PreceptorService 实例
func NewPreceptorService(repo *repository.Repository, logger *zap.Logger) PreceptorService {
	return &preceptorService{repo: repo, logger: logger}
}

func (s *preceptorService) Create(ctx context.Context, req *dto.CreatePreceptorRequest) (*dto.PreceptorResponse, error) {
	preceptor := &model.Preceptor{
		Name:  req.Name,
		Email: req.Email,
	}

	if err := s.repo.Preceptor.Create(ctx, preceptor); err != nil {
		s.logger.Error("创建带教老师失败", zap.Error(err))
		return nil, err
	}

	return toPreceptorResponse(preceptor), nil
}

func (s *preceptorService) List(ctx context.Context) ([]dto.PreceptorResponse, error) {
	preceptors, err := s.repo.Preceptor.List(ctx)
	if err != nil {
		s.logger.Error("列出带教老师失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PreceptorResponse, 0, len(preceptors))
	for i := range preceptors {
		result = append(result, *toPreceptorResponse(&preceptors[i]))
	}
	return result, nil
}
