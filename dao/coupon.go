package dao

import (
	"Everest/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type Coupon struct {
	Repo[models.Coupon]
}

func NewCoupon(db *gorm.DB) *Coupon {
	return &Coupon{
		Repo: NewRepo[models.Coupon](db),
	}
}

// LockByCode 核销路径锁定券行，并发的第二次核销要么等锁要么看到 USED
func (c *Coupon) LockByCode(ctx context.Context, tx *gorm.DB, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := forUpdate(tx.WithContext(ctx)).Where("code = ?", code).First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// CountByKind 某来源类别已发张数（消费档差额计算用）
func (c *Coupon) CountByKind(ctx context.Context, tx *gorm.DB, memberID int64, kind string) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&models.Coupon{}).
		Where("member_id = ? AND kind = ?", memberID, kind).
		Count(&count).Error
	return count, err
}

func (c *Coupon) CreateTx(ctx context.Context, tx *gorm.DB, coupon *models.Coupon) error {
	return tx.WithContext(ctx).Create(coupon).Error
}

// MarkUsed 只允许 AVAILABLE → USED，影响行数为 0 说明已被抢先核销
func (c *Coupon) MarkUsed(ctx context.Context, tx *gorm.DB, id int64, branch string, staffID int64, at time.Time) (bool, error) {
	result := tx.WithContext(ctx).Model(&models.Coupon{}).
		Where("id = ? AND status = ?", id, models.CouponAvailable).
		Updates(map[string]interface{}{
			"status":            models.CouponUsed,
			"used_at":           at,
			"used_branch":       branch,
			"redeemed_by_staff": staffID,
		})
	return result.RowsAffected > 0, result.Error
}

// MarkExpired 访问时惰性过期，同样只从 AVAILABLE 出发
func (c *Coupon) MarkExpired(ctx context.Context, tx *gorm.DB, id int64) error {
	return tx.WithContext(ctx).Model(&models.Coupon{}).
		Where("id = ? AND status = ?", id, models.CouponAvailable).
		Update("status", models.CouponExpired).Error
}

// ListByStatus 会员券包，快过期的排前面
func (c *Coupon) ListByStatus(ctx context.Context, memberID int64, statuses []string) ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := c.Db.WithContext(ctx).
		Where("member_id = ? AND status IN ?", memberID, statuses).
		Order("expiry_at ASC").
		Find(&coupons).Error
	return coupons, err
}
