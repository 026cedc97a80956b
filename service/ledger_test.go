package service

import (
	"Everest/models"
	"Everest/pkg/coupon"
	"Everest/pkg/ocr"
	"Everest/pkg/response"
	"context"
	"errors"
	"testing"
)

func parsedReceipt(no string, amount int64) *ocr.Parsed {
	return &ocr.Parsed{
		Branch:        "동대문점",
		Amount:        amount,
		ReceiptNo:     no,
		BusinessValid: true,
		DateToken:     "2025-03-14",
	}
}

func TestSubmit_AutoApprove(t *testing.T) {
	e := newTestEnv(t)
	m := e.seedMember(t, &models.Member{ID: 1001, Name: "김철수"})

	resp, err := e.ledger.Submit(context.Background(), m.ID, parsedReceipt("30012345", 15000), "s3://img/1.jpg")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if resp.Status != models.ReceiptApproved {
		t.Fatalf("expected APPROVED, got %s", resp.Status)
	}
	if resp.RewardBalance != 15000 {
		t.Fatalf("expected balance 15000, got %d", resp.RewardBalance)
	}
	if resp.VisitCount != 1 {
		t.Fatalf("expected visit count 1, got %d", resp.VisitCount)
	}
	if !resp.DiscardImage {
		t.Fatal("auto-approved receipt should signal image discard")
	}

	fresh := e.reloadMember(t, m.ID)
	if fresh.RewardBalance != 15000 || fresh.LifetimeSpend != 15000 {
		t.Fatalf("balance not persisted: %+v", fresh)
	}

	// 自动入账的票据不保留原图
	var r models.Receipt
	if err := e.db.Where("receipt_no = ?", "30012345").First(&r).Error; err != nil {
		t.Fatalf("receipt not persisted: %v", err)
	}
	if r.ImageURL != "" {
		t.Fatalf("auto-approved receipt must not keep image url, got %s", r.ImageURL)
	}
	if r.ApprovedAt == nil {
		t.Fatal("approved receipt must carry approved_at")
	}
}

func TestSubmit_ParseAndAuthenticityGates(t *testing.T) {
	e := newTestEnv(t)
	m := e.seedMember(t, &models.Member{ID: 1002})

	if _, err := e.ledger.Submit(context.Background(), m.ID, nil, ""); !errors.Is(err, response.ErrParseFailure) {
		t.Fatalf("expected parse failure, got %v", err)
	}
	if _, err := e.ledger.Submit(context.Background(), m.ID, parsedReceipt("1", 0), ""); !errors.Is(err, response.ErrParseFailure) {
		t.Fatalf("expected parse failure for zero amount, got %v", err)
	}

	bad := parsedReceipt("30099999", 15000)
	bad.BusinessValid = false
	if _, err := e.ledger.Submit(context.Background(), m.ID, bad, ""); !errors.Is(err, response.ErrAuthenticityFailure) {
		t.Fatalf("expected authenticity failure, got %v", err)
	}

	// 被门卫拦下的提交不能留下任何痕迹
	var count int64
	e.db.Model(&models.Receipt{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected submissions must not persist receipts, found %d", count)
	}
}

func TestSubmit_DailyCap(t *testing.T) {
	e := newTestEnv(t)
	m := e.seedMember(t, &models.Member{ID: 1003})

	if _, err := e.ledger.Submit(context.Background(), m.ID, parsedReceipt("30010001", 10000), ""); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	_, err := e.ledger.Submit(context.Background(), m.ID, parsedReceipt("30010002", 20000), "")
	if !errors.Is(err, response.ErrDailyCapExceeded) {
		t.Fatalf("expected daily cap error, got %v", err)
	}
}

// 退款不受日限额约束，冲负余额
func TestSubmit_RefundBypassesDailyCap(t *testing.T) {
	e := newTestEnv(t)
	m := e.seedMember(t, &models.Member{ID: 1004})

	if _, err := e.ledger.Submit(context.Background(), m.ID, parsedReceipt("30010003", 30000), ""); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	refund := parsedReceipt("30010004", -30000)
	refund.IsRefund = true
	resp, err := e.ledger.Submit(context.Background(), m.ID, refund, "")
	if err != nil {
		t.Fatalf("refund submit failed: %v", err)
	}
	if resp.RewardBalance != 0 {
		t.Fatalf("expected balance back to 0, got %d", resp.RewardBalance)
	}

	// 退款不算到访
	if resp.VisitCount != 1 {
		t.Fatalf("refund must not count a visit, got %d", resp.VisitCount)
	}
}

// 同一张票据被第二个人提交（传阅小票薅羊毛），唯一索引兜底
func TestSubmit_DuplicateReceiptAcrossMembers(t *testing.T) {
	e := newTestEnv(t)
	a := e.seedMember(t, &models.Member{ID: 1005})
	b := e.seedMember(t, &models.Member{ID: 1006})

	if _, err := e.ledger.Submit(context.Background(), a.ID, parsedReceipt("30010005", 12000), ""); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	_, err := e.ledger.Submit(context.Background(), b.ID, parsedReceipt("30010005", 12000), "")
	if !errors.Is(err, response.ErrDuplicateReceipt) {
		t.Fatalf("expected duplicate receipt error, got %v", err)
	}
}

func TestSubmit_HighValueGoesPendingThenApprove(t *testing.T) {
	e := newTestEnv(t)
	m := e.seedMember(t, &models.Member{ID: 1007})

	resp, err := e.ledger.Submit(context.Background(), m.ID, parsedReceipt("30010006", 200000), "s3://img/big.jpg")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if resp.Status != models.ReceiptPending {
		t.Fatalf("expected PENDING, got %s", resp.Status)
	}
	if resp.DiscardImage {
		t.Fatal("pending receipt must keep its image for review")
	}
	if resp.RewardBalance != 0 {
		t.Fatalf("pending receipt must not touch balance, got %d", resp.RewardBalance)
	}

	// 到访照记，审核只管钱
	if resp.VisitCount != 1 {
		t.Fatalf("expected visit recorded at submit, got %d", resp.VisitCount)
	}

	var r models.Receipt
	if err := e.db.Where("receipt_no = ?", "30010006").First(&r).Error; err != nil {
		t.Fatalf("receipt not persisted: %v", err)
	}
	if r.ImageURL != "s3://img/big.jpg" {
		t.Fatalf("pending receipt lost its image url: %s", r.ImageURL)
	}

	if _, err := e.ledger.Approve(context.Background(), r.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	fresh := e.reloadMember(t, m.ID)
	if fresh.RewardBalance != 200000 {
		t.Fatalf("expected balance 200000 after approve, got %d", fresh.RewardBalance)
	}

	// 幂等：重复审核是空操作
	if _, err := e.ledger.Approve(context.Background(), r.ID); err != nil {
		t.Fatalf("second approve failed: %v", err)
	}
	if e.reloadMember(t, m.ID).RewardBalance != 200000 {
		t.Fatal("double approve must not double-credit")
	}
}

func TestSubmit_VisitMilestoneIssued(t *testing.T) {
	e := newTestEnv(t)
	m := e.seedMember(t, &models.Member{ID: 1008, VisitCount: 2})

	resp, err := e.ledger.Submit(context.Background(), m.ID, parsedReceipt("30010007", 9000), "")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if resp.VisitCount != 3 {
		t.Fatalf("expected visit count 3, got %d", resp.VisitCount)
	}

	want := coupon.VisitCode(m.ID, 3)
	found := false
	for _, code := range resp.IssuedCoupons {
		if code == want {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected milestone coupon %s in %v", want, resp.IssuedCoupons)
	}
}

// 高额票据挂 PENDING 也要在提交时发到访里程碑券：
// 到访跟着 visit_count 走，不等审核；消费档因余额递延不触发
func TestSubmit_PendingIssuesVisitMilestone(t *testing.T) {
	e := newTestEnv(t)
	m := e.seedMember(t, &models.Member{ID: 1010, VisitCount: 2})

	resp, err := e.ledger.Submit(context.Background(), m.ID, parsedReceipt("30010008", 300000), "s3://img/big2.jpg")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if resp.Status != models.ReceiptPending {
		t.Fatalf("expected PENDING, got %s", resp.Status)
	}

	want := coupon.VisitCode(m.ID, 3)
	found := false
	for _, code := range resp.IssuedCoupons {
		if code == want {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected milestone coupon %s at submit, got %v", want, resp.IssuedCoupons)
	}

	// 审核通过时重评估不会再发一张
	var r models.Receipt
	if err := e.db.Where("receipt_no = ?", "30010008").First(&r).Error; err != nil {
		t.Fatalf("receipt not persisted: %v", err)
	}
	if _, err := e.ledger.Approve(context.Background(), r.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	var count int64
	e.db.Model(&models.Coupon{}).Where("member_id = ? AND kind = ?", m.ID, models.CouponKindVisit).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly 1 visit coupon, got %d", count)
	}
}

func TestAdjustBalance(t *testing.T) {
	e := newTestEnv(t)
	m := e.seedMember(t, &models.Member{ID: 1009, RewardBalance: 50000, LifetimeSpend: 50000})

	if err := e.ledger.AdjustBalance(context.Background(), m.ID, -20000); err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	fresh := e.reloadMember(t, m.ID)
	if fresh.RewardBalance != 30000 || fresh.LifetimeSpend != 30000 {
		t.Fatalf("adjust not applied: %+v", fresh)
	}

	if err := e.ledger.AdjustBalance(context.Background(), 99999, 1000); !errors.Is(err, response.ErrMemberNotFound) {
		t.Fatalf("expected member not found, got %v", err)
	}
}
