package models

import "time"

// 优惠券状态机：AVAILABLE → USED | EXPIRED，两个终态都不可逆
const (
	CouponAvailable = "AVAILABLE"
	CouponUsed      = "USED"
	CouponExpired   = "EXPIRED"
)

// 券的来源类别，消费档的 qualified-issued 差额计算要按 kind 过滤
const (
	CouponKindVisit   = "VISIT"
	CouponKindSpend   = "SPEND"
	CouponKindClaim   = "CLAIM"
	CouponKindWelcome = "WELCOME"
)

type Coupon struct {
	ID       int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	MemberID int64 `gorm:"column:member_id;not null;index:idx_coupons_member_id" json:"member_id"`
	// Code 全局唯一。里程碑券码是确定性推导的，唯一索引兜底保证同一里程碑只发一张
	Code   string `gorm:"column:code;type:varchar(50);not null;uniqueIndex:idx_code" json:"code"`
	Kind   string `gorm:"column:kind;type:varchar(20);not null" json:"kind"`
	Name   string `gorm:"column:name;size:100" json:"name"`
	Status string `gorm:"column:status;type:varchar(20);not null;default:'AVAILABLE'" json:"status"`

	IssuedAt time.Time `gorm:"column:issued_at;autoCreateTime" json:"issued_at"`
	ExpiryAt time.Time `gorm:"column:expiry_at" json:"expiry_at"`

	UsedAt           *time.Time `gorm:"column:used_at" json:"used_at"`
	UsedBranch       string     `gorm:"column:used_branch;size:50" json:"used_branch"`
	RedeemedByStaff  int64      `gorm:"column:redeemed_by_staff" json:"redeemed_by_staff"`
}

func (Coupon) TableName() string {
	return "coupons"
}
