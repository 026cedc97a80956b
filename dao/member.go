package dao

import (
	"Everest/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type Member struct {
	Repo[models.Member]
}

func NewMember(db *gorm.DB) *Member {
	return &Member{
		Repo: NewRepo[models.Member](db),
	}
}

// FindByPhoneHash 盲索引查询，正常路径
func (m *Member) FindByPhoneHash(ctx context.Context, hash string) (*models.Member, error) {
	return m.Repo.FindByWhere(ctx, "phone_hash = ?", hash)
}

// ScanLegacyByPhone 旧数据回退：phone_hash 为空的记录按归一化手机号线性比对。
// cap 限制扫描行数，迁移补完 hash 后这段就可以删
func (m *Member) ScanLegacyByPhone(ctx context.Context, match func(dbPhone string) bool, cap int) (*models.Member, error) {
	var legacy []models.Member
	err := m.Db.WithContext(ctx).
		Where("phone_hash = '' OR phone_hash IS NULL").
		Limit(cap).
		Find(&legacy).Error
	if err != nil {
		return nil, err
	}
	for i := range legacy {
		if match(legacy[i].Phone) {
			return &legacy[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// LockByID 事务内锁定会员行，同一会员的 submit/claim 在这里串行化
func (m *Member) LockByID(ctx context.Context, tx *gorm.DB, id int64) (*models.Member, error) {
	var member models.Member
	err := forUpdate(tx.WithContext(ctx)).First(&member, id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// ApplyBalance 积分与累计消费同步加减（delta 可为负）
func (m *Member) ApplyBalance(ctx context.Context, tx *gorm.DB, memberID int64, delta int64) error {
	return tx.WithContext(ctx).Model(&models.Member{}).
		Where("id = ?", memberID).
		Updates(map[string]interface{}{
			"reward_balance": gorm.Expr("reward_balance + ?", delta),
			"lifetime_spend": gorm.Expr("lifetime_spend + ?", delta),
		}).Error
}

// DeductBalance 条件更新扣减积分，余额不足时影响行数为 0，扣减不会发生。
// 不依赖先读后写，mysql/sqlite 下都是原子的
func (m *Member) DeductBalance(ctx context.Context, tx *gorm.DB, memberID int64, cost int64) (bool, error) {
	result := tx.WithContext(ctx).Model(&models.Member{}).
		Where("id = ? AND reward_balance >= ?", memberID, cost).
		Update("reward_balance", gorm.Expr("reward_balance - ?", cost))
	return result.RowsAffected > 0, result.Error
}

// RecordVisit 到访计数 +1 并刷新最后到访日
func (m *Member) RecordVisit(ctx context.Context, tx *gorm.DB, memberID int64, day time.Time) error {
	return tx.WithContext(ctx).Model(&models.Member{}).
		Where("id = ?", memberID).
		Updates(map[string]interface{}{
			"visit_count":     gorm.Expr("visit_count + ?", 1),
			"last_visit_date": day,
		}).Error
}
