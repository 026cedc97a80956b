package dao

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repo 通用 DAO 基座，各实体 DAO 内嵌它拿到基础读写
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

func (r *Repo[T]) Create(ctx context.Context, data *T) error {
	return r.Db.WithContext(ctx).Create(data).Error
}

func (r *Repo[T]) FindById(ctx context.Context, id int64) (*T, error) {
	var item T
	err := r.Db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repo[T]) FindByWhere(ctx context.Context, where string, args ...interface{}) (*T, error) {
	var item T
	err := r.Db.WithContext(ctx).Where(where, args...).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repo[T]) IsExist(ctx context.Context, where string, args ...interface{}) (bool, error) {
	var count int64
	var model T
	err := r.Db.WithContext(ctx).Model(&model).Where(where, args...).Limit(1).Count(&count).Error
	return count > 0, err
}

// forUpdate 行级锁。sqlite（测试环境）没有 FOR UPDATE 语法，
// 写事务本身互斥，直接跳过
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
