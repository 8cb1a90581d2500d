package repository

import (
	"context"

	"gorm.io/gorm"

	"clinical-eval/backend/internal/model"
)

// HealthUnitRepository 卫生单位数据访问接口
type HealthUnitRepository interface {
	Create(ctx context.Context, unit *model.HealthUnit) error
	GetByID(ctx context.Context, id int64) (*model.HealthUnit, error)
	List(ctx context.Context) ([]model.HealthUnit, error)
}

type healthUnitRepo struct {
	db *gorm.DB
}

// NewHealthUnitRepo 创建 HealthUnitRepository 实例
func NewHealthUnitRepo(db *gorm.DB) HealthUnitRepository {
	return &healthUnitRepo{db: db}
}

func (r *healthUnitRepo) Create(ctx context.Context, unit *model.HealthUnit) error {
	return r.db.WithContext(ctx).Create(unit).Error
}

func (r *healthUnitRepo) GetByID(ctx context.Context, id int64) (*model.HealthUnit, error) {
	var unit model.HealthUnit
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *healthUnitRepo) List(ctx context.Context) ([]model.HealthUnit, error) {
	var units []model.HealthUnit
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&units).Error
	return units, err
}
