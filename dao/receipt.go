package dao

import (
	"Everest/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type Receipt struct {
	Repo[models.Receipt]
}

func NewReceipt(db *gorm.DB) *Receipt {
	return &Receipt{
		Repo: NewRepo[models.Receipt](db),
	}
}

// HasPositiveOnDay 当日是否已有正额票据（日限额检查，退款不计入）
func (r *Receipt) HasPositiveOnDay(ctx context.Context, tx *gorm.DB, memberID int64, day time.Time) (bool, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var count int64
	err := tx.WithContext(ctx).Model(&models.Receipt{}).
		Where("member_id = ? AND amount > 0 AND captured_at >= ? AND captured_at < ?", memberID, start, end).
		Count(&count).Error
	return count > 0, err
}

// CreateTx 事务内落库。receipt_no 撞唯一索引时 gorm 会抛 ErrDuplicatedKey，
// 由 service 映射成 DuplicateReceipt
func (r *Receipt) CreateTx(ctx context.Context, tx *gorm.DB, receipt *models.Receipt) error {
	return tx.WithContext(ctx).Create(receipt).Error
}

// LockByID 人工审核路径锁定票据行
func (r *Receipt) LockByID(ctx context.Context, tx *gorm.DB, id int64) (*models.Receipt, error) {
	var receipt models.Receipt
	err := forUpdate(tx.WithContext(ctx)).First(&receipt, id).Error
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *Receipt) MarkApproved(ctx context.Context, tx *gorm.DB, id int64, at time.Time) error {
	return tx.WithContext(ctx).Model(&models.Receipt{}).
		Where("id = ? AND status = ?", id, models.ReceiptPending).
		Updates(map[string]interface{}{
			"status":      models.ReceiptApproved,
			"approved_at": at,
		}).Error
}

// ListRecent 会员最近的票据，新的在前
func (r *Receipt) ListRecent(ctx context.Context, memberID int64, limit int) ([]models.Receipt, error) {
	var receipts []models.Receipt
	err := r.Db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("captured_at DESC, id DESC").
		Limit(limit).
		Find(&receipts).Error
	return receipts, err
}
