package models

import "time"

// Staff 门店员工。核销时只校验 PIN 是否匹配该门店任一在职员工，
// 匹配到的员工 id 落到券的核销记录里留痕
type Staff struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"`
	Name    string `gorm:"column:name;size:50"`
	Branch  string `gorm:"column:branch;size:50;index:idx_branch"`
	PinHash string `gorm:"column:pin_hash;size:100"` // bcrypt
	// Active 不能带 default 标签：gorm 会在插入时略过零值字段，
	// false 就永远写不进库，离职员工的 PIN 还能继续核销
	Active bool `gorm:"column:active"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Staff) TableName() string {
	return "staffs"
}
