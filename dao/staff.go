package dao

import (
	"Everest/models"
	"context"

	"gorm.io/gorm"
)

type Staff struct {
	Repo[models.Staff]
}

func NewStaff(db *gorm.DB) *Staff {
	return &Staff{
		Repo: NewRepo[models.Staff](db),
	}
}

// ListActiveByBranch 门店在职员工。核销时逐个比对 bcrypt PIN，
// 门店员工数是个位数，全量捞出来没有压力
func (s *Staff) ListActiveByBranch(ctx context.Context, branch string) ([]models.Staff, error) {
	var staffs []models.Staff
	err := s.Db.WithContext(ctx).
		Where("branch = ? AND active = ?", branch, true).
		Find(&staffs).Error
	return staffs, err
}
