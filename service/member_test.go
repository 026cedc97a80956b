package service

import (
	"Everest/models"
	"Everest/pkg/response"
	"Everest/types"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRegister_WithWelcomeCoupon(t *testing.T) {
	e := newTestEnv(t)

	resp, err := e.member.Register(context.Background(), &types.RegisterMemberReq{
		Name:         "김철수",
		Phone:        "010-1234-5678",
		Branch:       "동대문점",
		AgreePrivacy: true,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if resp.MemberID <= 0 {
		t.Fatalf("expected member id, got %d", resp.MemberID)
	}
	if !strings.HasPrefix(resp.WelcomeCoupon, "WC-") {
		t.Fatalf("unexpected welcome coupon code: %s", resp.WelcomeCoupon)
	}

	m := e.reloadMember(t, resp.MemberID)
	if m.Phone != "01012345678" {
		t.Fatalf("phone must be stored normalized, got %s", m.Phone)
	}
	if m.PhoneHash == "" {
		t.Fatal("phone hash must be populated at registration")
	}
}

// 同一个号码的不同书写形式都要能查到
func TestFindByPhone_FormatVariants(t *testing.T) {
	e := newTestEnv(t)
	resp, err := e.member.Register(context.Background(), &types.RegisterMemberReq{
		Name:  "김철수",
		Phone: "010-1234-5678",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for _, phone := range []string{"010-1234-5678", "01012345678", "010 1234 5678"} {
		m, err := e.member.FindByPhone(context.Background(), phone)
		if err != nil {
			t.Fatalf("lookup %q failed: %v", phone, err)
		}
		if m.ID != resp.MemberID {
			t.Fatalf("lookup %q found wrong member %d", phone, m.ID)
		}
	}
}

// 迁移前的旧记录没有 phone_hash，靠有限线性回退兜住
func TestFindByPhone_LegacyFallback(t *testing.T) {
	e := newTestEnv(t)
	legacy := e.seedMember(t, &models.Member{ID: 4001, Name: "박민수", Phone: "010-9999-0000"})

	m, err := e.member.FindByPhone(context.Background(), "01099990000")
	if err != nil {
		t.Fatalf("legacy lookup failed: %v", err)
	}
	if m.ID != legacy.ID {
		t.Fatalf("expected member %d, got %d", legacy.ID, m.ID)
	}
}

func TestFindByPhone_NotFound(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.member.FindByPhone(context.Background(), "010-0000-0000")
	if !errors.Is(err, response.ErrMemberNotFound) {
		t.Fatalf("expected member not found, got %v", err)
	}
}

func TestDashboard(t *testing.T) {
	e := newTestEnv(t)
	m := e.seedMember(t, &models.Member{ID: 4002, Name: "김철수", VisitCount: 4, RewardBalance: 80000, LifetimeSpend: 120000})

	for i, amount := range []int64{10000, 20000, 30000, 40000} {
		r := &models.Receipt{
			MemberID:   m.ID,
			ReceiptNo:  "D" + strings.Repeat("0", 6) + string(rune('1'+i)),
			BranchPaid: "동대문점",
			Amount:     amount,
			Status:     models.ReceiptApproved,
			CapturedAt: time.Now().AddDate(0, 0, -3+i),
		}
		if err := e.db.Create(r).Error; err != nil {
			t.Fatalf("seed receipt: %v", err)
		}
	}

	resp, err := e.member.Dashboard(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if resp.RewardBalance != 80000 || resp.VisitCount != 4 {
		t.Fatalf("dashboard mismatch: %+v", resp)
	}

	// 只取最近 3 条，新的在前
	if len(resp.History) != 3 {
		t.Fatalf("expected 3 history items, got %d", len(resp.History))
	}
	if resp.History[0].Amount != 40000 {
		t.Fatalf("expected most recent first, got %+v", resp.History[0])
	}

	if _, err := e.member.Dashboard(context.Background(), 99999); !errors.Is(err, response.ErrMemberNotFound) {
		t.Fatalf("expected member not found, got %v", err)
	}
}

func TestCouponWallet_Split(t *testing.T) {
	e := newTestEnv(t)
	m := e.seedMember(t, &models.Member{ID: 4003})

	now := time.Now()
	used := now.Add(-time.Hour)
	coupons := []models.Coupon{
		{MemberID: m.ID, Code: "VM-W1", Kind: models.CouponKindVisit, Status: models.CouponAvailable, IssuedAt: now, ExpiryAt: now.AddDate(0, 0, 30)},
		{MemberID: m.ID, Code: "SP-W2", Kind: models.CouponKindSpend, Status: models.CouponUsed, IssuedAt: now, ExpiryAt: now.AddDate(0, 0, 30), UsedAt: &used},
		{MemberID: m.ID, Code: "CP-W3", Kind: models.CouponKindClaim, Status: models.CouponExpired, IssuedAt: now, ExpiryAt: now.AddDate(0, 0, -1)},
	}
	for i := range coupons {
		if err := e.db.Create(&coupons[i]).Error; err != nil {
			t.Fatalf("seed coupon: %v", err)
		}
	}

	resp, err := e.member.CouponWallet(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("wallet failed: %v", err)
	}
	if len(resp.Active) != 1 || resp.Active[0].Code != "VM-W1" {
		t.Fatalf("unexpected active list: %+v", resp.Active)
	}
	if len(resp.Inactive) != 2 {
		t.Fatalf("expected 2 inactive coupons, got %+v", resp.Inactive)
	}
}

func TestCouponLink_RoundTrip(t *testing.T) {
	e := newTestEnv(t)

	token, err := e.member.CouponLink(4004)
	if err != nil {
		t.Fatalf("generate link failed: %v", err)
	}

	id, err := e.member.ResolveCouponLink(token)
	if err != nil {
		t.Fatalf("resolve link failed: %v", err)
	}
	if id != 4004 {
		t.Fatalf("expected member 4004, got %d", id)
	}

	if _, err := e.member.ResolveCouponLink("garbage.token.here"); !errors.Is(err, response.ErrMemberNotFound) {
		t.Fatalf("expected member not found for bad token, got %v", err)
	}
}
