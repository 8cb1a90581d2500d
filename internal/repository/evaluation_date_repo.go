package repository

import (
	"context"

	"gorm.io/gorm"

	"clinical-eval/backend/internal/model"
)

// EvaluationDateRepository 评估日数据访问接口
type EvaluationDateRepository interface {
	Create(ctx context.Context, date *model.EvaluationDate) error
	GetByID(ctx context.Context, id int64) (*model.EvaluationDate, error)
	// ListByGroup 按日期升序返回，同一日期按插入顺序
	ListByGroup(ctx context.Context, groupID int64) ([]model.EvaluationDate, error)
}

type evaluationDateRepo struct {
	db *gorm.DB
}

// NewEvaluationDateRepo 创建 EvaluationDateRepository 实例
func NewEvaluationDateRepo(db *gorm.DB) EvaluationDateRepository {
	return &evaluationDateRepo{db: db}
}

func (r *evaluationDateRepo) Create(ctx context.Context, date *model.EvaluationDate) error {
	return r.db.WithContext(ctx).Create(date).Error
}

func (r *evaluationDateRepo) GetByID(ctx context.Context, id int64) (*model.EvaluationDate, error) {
	var date model.EvaluationDate
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&date).Error
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func (r *evaluationDateRepo) ListByGroup(ctx context.Context, groupID int64) ([]model.EvaluationDate, error) {
	var dates []model.EvaluationDate
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("date ASC, id ASC").
		Find(&dates).Error
	return dates, err
}
