package models

import (
	"time"

	"gorm.io/datatypes"
)

// 票据状态。APPROVED 为终态，PENDING 只能经人工审核转到 APPROVED
const (
	ReceiptPending  = "PENDING"
	ReceiptApproved = "APPROVED"
)

type Receipt struct {
	ID       int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	MemberID int64 `gorm:"column:member_id;not null;index:idx_receipts_member_id" json:"member_id"`
	// ReceiptNo 全局唯一，唯一索引是防并发重复提交的最终防线
	ReceiptNo  string `gorm:"column:receipt_no;type:varchar(50);not null;uniqueIndex:idx_receipt_no" json:"receipt_no"`
	BranchPaid string `gorm:"column:branch_paid;size:50" json:"branch_paid"`
	Amount     int64  `gorm:"column:amount;not null" json:"amount"` // 负数 = 退款
	Status     string `gorm:"column:status;type:varchar(20);not null;default:'PENDING'" json:"status"`
	// ImageURL 高额票据待审核期间保留原图，审核完或自动入账后由外部清理
	ImageURL string `gorm:"column:image_url;size:255" json:"image_url"`
	// RawParsed 解析快照，审核页展示解析依据用
	RawParsed  datatypes.JSON `gorm:"column:raw_parsed" json:"raw_parsed"`
	CapturedAt time.Time      `gorm:"column:captured_at;autoCreateTime" json:"captured_at"`
	ApprovedAt *time.Time     `gorm:"column:approved_at" json:"approved_at"`
}

func (Receipt) TableName() string {
	return "receipts"
}
