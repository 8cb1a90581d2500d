package repository

import (
	"context"

	"gorm.io/gorm"

	"clinical-eval/backend/internal/model"
)

// GroupMembershipRepository 小组成员关系数据访问接口
type GroupMembershipRepository interface {
	Create(ctx context.Context, membership *model.GroupMembership) error
	// ListByGroup 按加入顺序返回小组成员关系
	ListByGroup(ctx context.Context, groupID int64) ([]model.GroupMembership, error)
	Exists(ctx context.Context, studentID, groupID int64) (bool, error)
}

type groupMembershipRepo struct {
	db *gorm.DB
}

// NewGroupMembershipRepo 创建 GroupMembershipRepository 实例
func NewGroupMembershipRepo(db *gorm.DB) GroupMembershipRepository {
	return &groupMembershipRepo{db: db}
}

func (r *groupMembershipRepo) Create(ctx context.Context, membership *model.GroupMembership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *groupMembershipRepo) ListByGroup(ctx context.Context, groupID int64) ([]model.GroupMembership, error) {
	var memberships []model.GroupMembership
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("id ASC").
		Find(&memberships).Error
	return memberships, err
}

func (r *groupMembershipRepo) Exists(ctx context.Context, studentID, groupID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.GroupMembership{}).
		Where("student_id = ? AND group_id = ?", studentID, groupID).
		Count(&count).Error
	return count > 0, err
}
