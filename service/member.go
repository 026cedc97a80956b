package service

import (
	"Everest/config"
	"Everest/dao"
	"Everest/models"
	"Everest/pkg/coupon"
	"Everest/pkg/jwt"
	"Everest/pkg/response"
	"Everest/pkg/snowflake"
	"Everest/types"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

const defaultLookupScanCap = 5000

type MemberService struct {
	Config     *config.Config
	DB         *gorm.DB
	MemberDAO  *dao.Member
	ReceiptDAO *dao.Receipt
	CouponDAO  *dao.Coupon
}

var _ IMemberService = (*MemberService)(nil)

type IMemberService interface {
	Register(ctx context.Context, req *types.RegisterMemberReq) (*types.RegisterMemberResp, error)
	FindByPhone(ctx context.Context, phone string) (*models.Member, error)
	Dashboard(ctx context.Context, memberID int64) (*types.MemberDashboardResp, error)
	CouponWallet(ctx context.Context, memberID int64) (*types.CouponWalletResp, error)
	CouponLink(memberID int64) (string, error)
	ResolveCouponLink(token string) (int64, error)
}

// PhoneHash 手机号盲索引：归一化后拼 pepper 做 sha256。
// 明文检索被索引查询替代，pepper 在配置里，环境间不同
func (s *MemberService) PhoneHash(phone string) string {
	sum := sha256.Sum256([]byte(normalizePhone(phone) + s.Config.App.PhonePepper))
	return hex.EncodeToString(sum[:])
}

func normalizePhone(phone string) string {
	phone = strings.ReplaceAll(phone, "-", "")
	phone = strings.ReplaceAll(phone, " ", "")
	return strings.TrimSpace(phone)
}

// FindByPhone 正常路径走盲索引；查不到再对无 hash 的旧记录做有限线性比对（迁移债）
func (s *MemberService) FindByPhone(ctx context.Context, phone string) (*models.Member, error) {
	member, err := s.MemberDAO.FindByPhoneHash(ctx, s.PhoneHash(phone))
	if err == nil {
		return member, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	scanCap := s.Config.App.MemberLookupScanCap
	if scanCap <= 0 {
		scanCap = defaultLookupScanCap
	}
	want := normalizePhone(phone)
	member, err = s.MemberDAO.ScanLegacyByPhone(ctx, func(dbPhone string) bool {
		return normalizePhone(dbPhone) == want
	}, scanCap)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// Register 注册 + 欢迎券，一个事务
func (s *MemberService) Register(ctx context.Context, req *types.RegisterMemberReq) (*types.RegisterMemberResp, error) {
	now := time.Now()
	member := &models.Member{
		ID:             snowflake.GenMemberID(),
		Name:           req.Name,
		Phone:          normalizePhone(req.Phone),
		PhoneHash:      s.PhoneHash(req.Phone),
		Branch:         req.Branch,
		Gender:         req.Gender,
		AgeGroup:       req.AgeGroup,
		AgreeMarketing: req.AgreeMarketing,
		AgreePrivacy:   req.AgreePrivacy,
	}

	resp := &types.RegisterMemberResp{}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		if s.Config.Rewards.WelcomeCouponName == "" {
			return nil
		}
		c := &models.Coupon{
			MemberID: member.ID,
			Code:     coupon.WelcomeCode(),
			Kind:     models.CouponKindWelcome,
			Name:     s.Config.Rewards.WelcomeCouponName,
			Status:   models.CouponAvailable,
			IssuedAt: now,
			ExpiryAt: now.AddDate(0, 0, s.Config.Rewards.WelcomeValidityDays),
		}
		if err := s.CouponDAO.CreateTx(ctx, tx, c); err != nil {
			return err
		}
		resp.WelcomeCoupon = c.Code
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp.MemberID = member.ID
	return resp, nil
}

func (s *MemberService) Dashboard(ctx context.Context, memberID int64) (*types.MemberDashboardResp, error) {
	member, err := s.MemberDAO.FindById(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrMemberNotFound
		}
		return nil, err
	}

	receipts, err := s.ReceiptDAO.ListRecent(ctx, memberID, 3)
	if err != nil {
		return nil, err
	}

	history := make([]types.ReceiptHistoryItem, 0, len(receipts))
	for _, r := range receipts {
		history = append(history, types.ReceiptHistoryItem{
			Date:   r.CapturedAt.Format("2006-01-02"),
			Branch: r.BranchPaid,
			Amount: r.Amount,
			Status: r.Status,
		})
	}

	return &types.MemberDashboardResp{
		MemberID:      member.ID,
		Name:          member.Name,
		VisitCount:    member.VisitCount,
		RewardBalance: member.RewardBalance,
		LifetimeSpend: member.LifetimeSpend,
		History:       history,
	}, nil
}

func (s *MemberService) CouponWallet(ctx context.Context, memberID int64) (*types.CouponWalletResp, error) {
	active, err := s.CouponDAO.ListByStatus(ctx, memberID, []string{models.CouponAvailable})
	if err != nil {
		return nil, err
	}
	inactive, err := s.CouponDAO.ListByStatus(ctx, memberID, []string{models.CouponUsed, models.CouponExpired})
	if err != nil {
		return nil, err
	}

	return &types.CouponWalletResp{
		Active:   toCouponItems(active),
		Inactive: toCouponItems(inactive),
	}, nil
}

func toCouponItems(coupons []models.Coupon) []types.CouponItem {
	items := make([]types.CouponItem, 0, len(coupons))
	for _, c := range coupons {
		item := types.CouponItem{
			Code:     c.Code,
			Name:     c.Name,
			Status:   c.Status,
			IssuedAt: c.IssuedAt.Format("2006-01-02"),
			ExpiryAt: c.ExpiryAt.Format("2006-01-02"),
		}
		if c.UsedAt != nil {
			item.UsedAt = c.UsedAt.Format("2006-01-02")
		}
		items = append(items, item)
	}
	return items
}

// CouponLink 알림톡 按钮里免登录进券包的链接令牌
func (s *MemberService) CouponLink(memberID int64) (string, error) {
	maxAge := time.Duration(s.Config.Jwt.CouponLinkMaxAgeDays) * 24 * time.Hour
	return jwt.GenerateCouponToken([]byte(s.Config.Jwt.Secret), memberID, maxAge)
}

func (s *MemberService) ResolveCouponLink(token string) (int64, error) {
	claims, err := jwt.ParseCouponToken([]byte(s.Config.Jwt.Secret), token)
	if err != nil {
		return 0, response.ErrMemberNotFound
	}
	return claims.MemberID, nil
}
