package repository

import (
	"context"

	"gorm.io/gorm"

	"clinical-eval/backend/internal/model"
)

// PreceptorRepository 带教老师数据访问接口
type PreceptorRepository interface {
	Create(ctx context.Context, preceptor *model.Preceptor) error
	GetByID(ctx context.Context, id int64) (*model.Preceptor, error)
	List(ctx context.Context) ([]model.Preceptor, error)
}

type preceptorRepo struct {
	db *gorm.DB
}

// NewPreceptorRepo 创建 PreceptorRepository 实例
func NewPreceptorRepo(db *gorm.DB) PreceptorRepository {
	return &preceptorRepo{db: db}
}

func (r *preceptorRepo) Create(ctx context.Context, preceptor *model.Preceptor) error {
	return r.db.WithContext(ctx).Create(preceptor).Error
}

func (r *preceptorRepo) GetByID(ctx context.Context, id int64) (*model.Preceptor, error) {
	var preceptor model.Preceptor
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&preceptor).Error
	if err != nil {
		return nil, err
	}
	return &preceptor, nil
}

func (r *preceptorRepo) List(ctx context.Context) ([]model.Preceptor, error) {
	var preceptors []model.Preceptor
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&preceptors).Error
	return preceptors, err
}
