package models

import "time"

type Member struct {
	ID    int64  `gorm:"primaryKey;column:id"` // snowflake
	Name  string `gorm:"column:name;size:50"`
	Phone string `gorm:"column:phone;size:20"`
	// PhoneHash sha256(归一化手机号+pepper) 的盲索引，查询走这里，不碰明文。
	// 旧数据可能为空，查不到时走有限的线性回退（迁移债）
	PhoneHash string `gorm:"column:phone_hash;size:64;index:idx_phone_hash"`
	Branch    string `gorm:"column:branch;size:50"` // 注册门店
	Gender    string `gorm:"column:gender;size:10"`
	AgeGroup  string `gorm:"column:age_group;size:20"`

	AgreeMarketing bool `gorm:"column:agree_marketing"`
	AgreePrivacy   bool `gorm:"column:agree_privacy"`

	VisitCount    int        `gorm:"column:visit_count;default:0"`
	LastVisitDate *time.Time `gorm:"column:last_visit_date;type:date"`
	// LifetimeSpend 审核通过的票据金额累计（退款为负），消费档奖励按它算
	LifetimeSpend int64 `gorm:"column:lifetime_spend;default:0"`
	// RewardBalance 可用积分余额，兑换时扣减
	RewardBalance int64 `gorm:"column:reward_balance;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Member) TableName() string {
	return "members"
}
