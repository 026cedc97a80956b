package service

import (
	"Everest/config"
	"Everest/dao"
	"Everest/models"
	"Everest/pkg/coupon"
	"Everest/pkg/response"
	"Everest/types"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type RewardsService struct {
	Config    *config.Config
	DB        *gorm.DB
	MemberDAO *dao.Member
	CouponDAO *dao.Coupon
}

var _ IRewardsService = (*RewardsService)(nil)

type IRewardsService interface {
	Claim(ctx context.Context, memberID int64, tierLevel int) (*types.ClaimRewardResp, error)
}

// EvaluateTx 票据入账后的两条奖励线，在入账事务内执行。
// 两条线都是幂等的，重复评估不会多发一张
func (r *RewardsService) EvaluateTx(ctx context.Context, tx *gorm.DB, member *models.Member, now time.Time) ([]string, error) {
	var issued []string

	visitCodes, err := r.evaluateVisitMilestones(ctx, tx, member, now)
	if err != nil {
		return nil, err
	}
	issued = append(issued, visitCodes...)

	spendCodes, err := r.evaluateSpendTier(ctx, tx, member, now)
	if err != nil {
		return nil, err
	}
	issued = append(issued, spendCodes...)

	return issued, nil
}

// evaluateVisitMilestones 到访里程碑。券码由 会员+里程碑 确定性推导，
// 撞唯一索引说明早就发过，静默跳过——这就是"每个里程碑最多一张"的保证
func (r *RewardsService) evaluateVisitMilestones(ctx context.Context, tx *gorm.DB, member *models.Member, now time.Time) ([]string, error) {
	var issued []string
	for _, ms := range r.Config.Rewards.VisitMilestones {
		if member.VisitCount < ms.Visits {
			continue
		}
		c := &models.Coupon{
			MemberID: member.ID,
			Code:     coupon.VisitCode(member.ID, ms.Visits),
			Kind:     models.CouponKindVisit,
			Name:     ms.Name,
			Status:   models.CouponAvailable,
			IssuedAt: now,
			ExpiryAt: now.AddDate(0, 0, ms.ValidityDays),
		}
		if err := r.CouponDAO.CreateTx(ctx, tx, c); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return nil, err
		}
		issued = append(issued, c.Code)
	}
	return issued, nil
}

// evaluateSpendTier 消费档：qualified = floor(累计消费/档位)，
// 差额补发到位。退款拉低累计消费不回收已发的券
func (r *RewardsService) evaluateSpendTier(ctx context.Context, tx *gorm.DB, member *models.Member, now time.Time) ([]string, error) {
	tier := r.Config.Rewards.SpendTier
	if tier == nil || tier.Threshold <= 0 {
		return nil, nil
	}

	qualified := member.LifetimeSpend / tier.Threshold
	if qualified < 0 {
		qualified = 0
	}
	issuedCount, err := r.CouponDAO.CountByKind(ctx, tx, member.ID, models.CouponKindSpend)
	if err != nil {
		return nil, err
	}

	var issued []string
	for seq := issuedCount + 1; seq <= qualified; seq++ {
		name, days := tier.Name, tier.ValidityDays
		// 每第 N 张升级为高价值奖励，有效期也更长
		if tier.HighValueEvery > 0 && seq%int64(tier.HighValueEvery) == 0 {
			name, days = tier.HighValueName, tier.HighValueValidityDays
		}
		c := &models.Coupon{
			MemberID: member.ID,
			Code:     coupon.SpendCode(member.ID, int(seq)),
			Kind:     models.CouponKindSpend,
			Name:     name,
			Status:   models.CouponAvailable,
			IssuedAt: now,
			ExpiryAt: now.AddDate(0, 0, days),
		}
		if err := r.CouponDAO.CreateTx(ctx, tx, c); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return nil, err
		}
		issued = append(issued, c.Code)
	}
	return issued, nil
}

// Claim 积分兑换。条件更新扣减，余额不足时一分都不会动
func (r *RewardsService) Claim(ctx context.Context, memberID int64, tierLevel int) (*types.ClaimRewardResp, error) {
	tier := r.Config.Rewards.TierByLevel(tierLevel)
	if tier == nil {
		return nil, response.ErrInvalidTier
	}

	now := time.Now()
	var resp *types.ClaimRewardResp

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		member, err := r.MemberDAO.LockByID(ctx, tx, memberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.ErrMemberNotFound
			}
			return err
		}

		ok, err := r.MemberDAO.DeductBalance(ctx, tx, memberID, tier.Cost)
		if err != nil {
			return err
		}
		if !ok {
			return response.ErrInsufficientBalance
		}

		c := &models.Coupon{
			MemberID: memberID,
			Code:     coupon.ClaimCode(),
			Kind:     models.CouponKindClaim,
			Name:     tier.Name,
			Status:   models.CouponAvailable,
			IssuedAt: now,
			ExpiryAt: now.AddDate(0, 0, tier.ValidityDays),
		}
		if err := r.CouponDAO.CreateTx(ctx, tx, c); err != nil {
			return err
		}

		resp = &types.ClaimRewardResp{
			CouponCode:       c.Code,
			CouponName:       tier.Name,
			RemainingBalance: member.RewardBalance - tier.Cost,
			ExpiryAt:         c.ExpiryAt.Format("2006-01-02"),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
