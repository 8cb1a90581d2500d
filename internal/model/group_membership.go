package model

// GroupMembership 小组成员关系表 — 对应 group_memberships
// (student_id, group_id) 唯一
type GroupMembership struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"                                 json:"id"`
	StudentID int64 `gorm:"not null;uniqueIndex:uq_group_memberships_student_group" json:"student_id"`
	GroupID   int64 `gorm:"not null;uniqueIndex:uq_group_memberships_student_group;index" json:"group_id"`
	CreatedModel

	// 关联
	Student *Student      `gorm:"foreignKey:StudentID;constraint:OnDelete:RESTRICT" json:"-"`
	Group   *StudentGroup `gorm:"foreignKey:GroupID;constraint:OnDelete:RESTRICT"   json:"-"`
}

// TableName 指定表名
func (GroupMembership) TableName() string { return "group_memberships" }
