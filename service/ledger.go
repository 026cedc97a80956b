package service

import (
	"Everest/config"
	"Everest/dao"
	"Everest/models"
	"Everest/pkg/ocr"
	"Everest/pkg/response"
	"Everest/types"
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type LedgerService struct {
	Config     *config.Config
	DB         *gorm.DB
	MemberDAO  *dao.Member
	ReceiptDAO *dao.Receipt
	Rewards    *RewardsService
}

var _ ILedgerService = (*LedgerService)(nil)

type ILedgerService interface {
	Submit(ctx context.Context, memberID int64, parsed *ocr.Parsed, imageURL string) (*types.SubmitReceiptResp, error)
	Approve(ctx context.Context, receiptID int64) (*types.ApproveReceiptResp, error)
	AdjustBalance(ctx context.Context, memberID int64, delta int64) error
}

// Submit 票据入账。同一会员的并发提交靠会员行锁串行化，
// 票据号重复靠唯一索引兜底，所有 read-check-write 都在一个事务里
func (s *LedgerService) Submit(ctx context.Context, memberID int64, parsed *ocr.Parsed, imageURL string) (*types.SubmitReceiptResp, error) {
	if parsed == nil || parsed.Amount == 0 {
		return nil, response.ErrParseFailure
	}
	// 真伪校验不过，后面一律不碰状态
	if !parsed.BusinessValid {
		return nil, response.ErrAuthenticityFailure
	}

	now := time.Now()
	autoApprove := parsed.Amount < s.Config.Rewards.AutoApproveThreshold

	var resp *types.SubmitReceiptResp

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		member, err := s.MemberDAO.LockByID(ctx, tx, memberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.ErrMemberNotFound
			}
			return err
		}

		// 日限额：正额一天一张，退款不受限
		if parsed.Amount > 0 {
			exists, err := s.ReceiptDAO.HasPositiveOnDay(ctx, tx, memberID, now)
			if err != nil {
				return err
			}
			if exists {
				return response.ErrDailyCapExceeded
			}
		}

		raw, _ := json.Marshal(parsed)
		receipt := &models.Receipt{
			MemberID:   memberID,
			ReceiptNo:  parsed.ReceiptNo,
			BranchPaid: parsed.Branch,
			Amount:     parsed.Amount,
			Status:     models.ReceiptPending,
			RawParsed:  raw,
			CapturedAt: now,
		}
		if autoApprove {
			receipt.Status = models.ReceiptApproved
			receipt.ApprovedAt = &now
		} else {
			// 高额票据留图待人工审核
			receipt.ImageURL = imageURL
		}

		if err := s.ReceiptDAO.CreateTx(ctx, tx, receipt); err != nil {
			// 并发抢插同一张票据时唯一索引先到先得，后到的按重复票据处理
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return response.ErrDuplicateReceipt
			}
			return err
		}

		// 正额票据记一次到访，同一天最多一次（日限额已经挡掉第二张，这里再保一道）
		if parsed.Amount > 0 && !visitedToday(member.LastVisitDate, now) {
			if err := s.MemberDAO.RecordVisit(ctx, tx, memberID, dayOf(now)); err != nil {
				return err
			}
		}

		if autoApprove {
			if err := s.MemberDAO.ApplyBalance(ctx, tx, memberID, parsed.Amount); err != nil {
				return err
			}
		}

		// 奖励评估要用更新后的快照，PENDING 票据也要评估：
		// 到访里程碑跟着 visit_count 走，消费档因余额递延在这里天然不触发
		fresh, err := s.MemberDAO.LockByID(ctx, tx, memberID)
		if err != nil {
			return err
		}
		issued, err := s.Rewards.EvaluateTx(ctx, tx, fresh, now)
		if err != nil {
			return err
		}
		member = fresh

		resp = &types.SubmitReceiptResp{
			Status:        receipt.Status,
			ReceiptNo:     receipt.ReceiptNo,
			Branch:        receipt.BranchPaid,
			Amount:        receipt.Amount,
			VisitCount:    member.VisitCount,
			RewardBalance: member.RewardBalance,
			IssuedCoupons: issued,
			DiscardImage:  autoApprove,
		}
		if autoApprove {
			resp.Message = "적립이 완료되었습니다."
		} else {
			resp.Message = "고액 영수증은 확인 후 적립됩니다. (1~2일 소요)"
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Approve 人工审核通过。幂等：已经 APPROVED 的票据再审一次是空操作。
// 此时才把金额落到余额/累计消费，并补跑奖励评估
func (s *LedgerService) Approve(ctx context.Context, receiptID int64) (*types.ApproveReceiptResp, error) {
	now := time.Now()
	resp := &types.ApproveReceiptResp{ReceiptID: receiptID}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		receipt, err := s.ReceiptDAO.LockByID(ctx, tx, receiptID)
		if err != nil {
			return err
		}
		if receipt.Status != models.ReceiptPending {
			return nil
		}

		if _, err := s.MemberDAO.LockByID(ctx, tx, receipt.MemberID); err != nil {
			return err
		}
		if err := s.ReceiptDAO.MarkApproved(ctx, tx, receiptID, now); err != nil {
			return err
		}
		if err := s.MemberDAO.ApplyBalance(ctx, tx, receipt.MemberID, receipt.Amount); err != nil {
			return err
		}

		fresh, err := s.MemberDAO.LockByID(ctx, tx, receipt.MemberID)
		if err != nil {
			return err
		}
		issued, err := s.Rewards.EvaluateTx(ctx, tx, fresh, now)
		if err != nil {
			return err
		}
		resp.IssuedCoupons = issued
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// AdjustBalance 外部管理操作（改单/删单）的冲正入口，
// 保证票据修正和余额修正不脱节
func (s *LedgerService) AdjustBalance(ctx context.Context, memberID int64, delta int64) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.MemberDAO.LockByID(ctx, tx, memberID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.ErrMemberNotFound
			}
			return err
		}
		return s.MemberDAO.ApplyBalance(ctx, tx, memberID, delta)
	})
}

func visitedToday(last *time.Time, now time.Time) bool {
	if last == nil {
		return false
	}
	y1, m1, d1 := last.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
