package repository

import (
	"context"

	"gorm.io/gorm"

	"clinical-eval/backend/internal/model"
)

// EvaluationFilters 评估列表过滤条件，零值表示不过滤
type EvaluationFilters struct {
	StudentID int64
	GroupID   int64
}

// EvaluationRepository 评估数据访问接口
type EvaluationRepository interface {
	Create(ctx context.Context, evaluation *model.Evaluation) error
	GetByID(ctx context.Context, id int64) (*model.Evaluation, error)
	List(ctx context.Context, filters *EvaluationFilters) ([]model.Evaluation, error)
	// ListByGroup 返回评估日属于该小组的全部评估（经 evaluation_dates 关联）
	ListByGroup(ctx context.Context, groupID int64) ([]model.Evaluation, error)
	Exists(ctx context.Context, studentID, evaluationDateID int64) (bool, error)
	Update(ctx context.Context, evaluation *model.Evaluation) error
	Delete(ctx context.Context, id int64) error
}

type evaluationRepo struct {
	db *gorm.DB
}

// NewEvaluationRepo 创建 EvaluationRepository 实例
func NewEvaluationRepo(db *gorm.DB) EvaluationRepository {
	return &evaluationRepo{db: db}
}

func (r *evaluationRepo) Create(ctx context.Context, evaluation *model.Evaluation) error {
	return r.db.WithContext(ctx).Create(evaluation).Error
}

func (r *evaluationRepo) GetByID(ctx context.Context, id int64) (*model.Evaluation, error) {
	var evaluation model.Evaluation
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&evaluation).Error
	if err != nil {
		return nil, err
	}
	return &evaluation, nil
}

func (r *evaluationRepo) List(ctx context.Context, filters *EvaluationFilters) ([]model.Evaluation, error) {
	var evaluations []model.Evaluation
	db := r.db.WithContext(ctx).Model(&model.Evaluation{})

	if filters != nil {
		if filters.StudentID > 0 {
			db = db.Where("evaluations.student_id = ?", filters.StudentID)
		}
		if filters.GroupID > 0 {
			db = db.Select("evaluations.*").
				Joins("JOIN evaluation_dates ON evaluation_dates.id = evaluations.evaluation_date_id").
				Where("evaluation_dates.group_id = ?", filters.GroupID)
		}
	}

	err := db.Order("evaluations.id ASC").Find(&evaluations).Error
	return evaluations, err
}

func (r *evaluationRepo) ListByGroup(ctx context.Context, groupID int64) ([]model.Evaluation, error) {
	return r.List(ctx, &EvaluationFilters{GroupID: groupID})
}

func (r *evaluationRepo) Exists(ctx context.Context, studentID, evaluationDateID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Evaluation{}).
		Where("student_id = ? AND evaluation_date_id = ?", studentID, evaluationDateID).
		Count(&count).Error
	return count > 0, err
}

// Update 整行保存，UpdatedAt 由 GORM 自动刷新
func (r *evaluationRepo) Update(ctx context.Context, evaluation *model.Evaluation) error {
	return r.db.WithContext(ctx).Save(evaluation).Error
}

func (r *evaluationRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Evaluation{}).Error
}
