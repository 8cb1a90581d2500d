package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	HealthUnit      HealthUnitRepository
	Preceptor       PreceptorRepository
	Student         StudentRepository
	StudentGroup    StudentGroupRepository
	GroupMembership GroupMembershipRepository
	EvaluationDate  EvaluationDateRepository
	Evaluation      EvaluationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:              db,
		HealthUnit:      NewHealthUnitRepo(db),
		Preceptor:       NewPreceptorRepo(db),
		Student:         NewStudentRepo(db),
		StudentGroup:    NewStudentGroupRepo(db),
		GroupMembership: NewGroupMembershipRepo(db),
		EvaluationDate:  NewEvaluationDateRepo(db),
		Evaluation:      NewEvaluationRepo(db),
	}
}

// BeginTx 开启事务
// 单元测试中 Repository 由 mock 组装、db 为 nil，此时返回 nil 事务，调用方按无事务处理
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到事务连接的 Repository 副本；tx 为 nil 时返回自身
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
