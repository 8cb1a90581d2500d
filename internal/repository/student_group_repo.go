package repository

import (
	"context"

	"gorm.io/gorm"

	"clinical-eval/backend/internal/model"
)

// StudentGroupRepository 小组数据访问接口
type StudentGroupRepository interface {
	Create(ctx context.Context, group *model.StudentGroup) error
	GetByID(ctx context.Context, id int64) (*model.StudentGroup, error)
	List(ctx context.Context) ([]model.StudentGroup, error)
}

type studentGroupRepo struct {
	db *gorm.DB
}

// NewStudentGroupRepo 创建 StudentGroupRepository 实例
func NewStudentGroupRepo(db *gorm.DB) StudentGroupRepository {
	return &studentGroupRepo{db: db}
}

func (r *studentGroupRepo) Create(ctx context.Context, group *model.StudentGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *studentGroupRepo) GetByID(ctx context.Context, id int64) (*model.StudentGroup, error) {
	var group model.StudentGroup
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *studentGroupRepo) List(ctx context.Context) ([]model.StudentGroup, error) {
	var groups []model.StudentGroup
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&groups).Error
	return groups, err
}
