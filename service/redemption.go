package service

import (
	"Everest/config"
	"Everest/dao"
	"Everest/models"
	"Everest/pkg/response"
	"Everest/types"
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RedemptionService struct {
	Config    *config.Config
	DB        *gorm.DB
	CouponDAO *dao.Coupon
	StaffDAO  *dao.Staff
}

var _ IRedemptionService = (*RedemptionService)(nil)

type IRedemptionService interface {
	Redeem(ctx context.Context, couponCode, staffPin, branch string) (*types.RedeemCouponResp, error)
}

// Redeem 门店核销。券行锁住之后做全部前置检查，
// 并发的第二次核销只会看到 USED。
// 惰性过期要落库，所以过期分支提交事务后再返回业务错误
func (s *RedemptionService) Redeem(ctx context.Context, couponCode, staffPin, branch string) (*types.RedeemCouponResp, error) {
	now := time.Now()

	var (
		resp   *types.RedeemCouponResp
		bizErr *response.BizError
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := s.CouponDAO.LockByCode(ctx, tx, couponCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.ErrCouponNotFound
			}
			return err
		}

		switch c.Status {
		case models.CouponUsed:
			return response.ErrCouponAlreadyUsed
		case models.CouponExpired:
			return response.ErrCouponExpired
		}

		if c.ExpiryAt.Before(now) {
			if err := s.CouponDAO.MarkExpired(ctx, tx, c.ID); err != nil {
				return err
			}
			// EXPIRED 转移要提交，不能随业务错误一起回滚
			bizErr = response.ErrCouponExpired
			return nil
		}

		staff, err := s.authorizeStaff(ctx, staffPin, branch)
		if err != nil {
			return err
		}

		ok, err := s.CouponDAO.MarkUsed(ctx, tx, c.ID, branch, staff.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			return response.ErrCouponAlreadyUsed
		}

		resp = &types.RedeemCouponResp{
			Message:    "쿠폰 사용이 완료되었습니다. (처리자: " + staff.Name + ")",
			CouponName: c.Name,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if bizErr != nil {
		return nil, bizErr
	}
	return resp, nil
}

// authorizeStaff 该门店任一在职员工的 PIN 匹配即放行，
// 匹配到谁就记谁（审计留痕），不绑定具体工号
func (s *RedemptionService) authorizeStaff(ctx context.Context, pin, branch string) (*models.Staff, error) {
	staffs, err := s.StaffDAO.ListActiveByBranch(ctx, branch)
	if err != nil {
		return nil, err
	}
	for i := range staffs {
		if bcrypt.CompareHashAndPassword([]byte(staffs[i].PinHash), []byte(pin)) == nil {
			return &staffs[i], nil
		}
	}
	return nil, response.ErrStaffAuthFailure
}
