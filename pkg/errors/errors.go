package errors

import (
	"errors"

	"gorm.io/gorm"
)

// ErrDuplicate 唯一约束冲突：同一学生重复加入小组，或同一评估日重复评分
var ErrDuplicate = errors.New("记录已存在")

// ErrReferenced 外键约束冲突：引用的记录不存在，或记录仍被其他数据引用
var ErrReferenced = errors.New("关联记录不存在或仍被引用")

// Translate 将 GORM 翻译后的约束错误映射为业务可识别的错误
// 需配合 gorm.Config{TranslateError: true} 使用
func Translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrReferenced
	default:
		return err
	}
}
