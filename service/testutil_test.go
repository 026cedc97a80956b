package service

import (
	"Everest/config"
	"Everest/dao"
	"Everest/models"
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB 每个测试一个独立的内存库。cache=shared 让 gorm 连接池里的
// 连接看到同一份数据
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Member{},
		&models.Receipt{},
		&models.Coupon{},
		&models.Staff{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		App: &config.App{
			Env:         "test",
			Debug:       true,
			PhonePepper: "test-pepper",
		},
		Jwt: &config.Jwt{
			Secret:               "test-secret",
			CouponLinkMaxAgeDays: 30,
		},
		Rewards: &config.Rewards{
			AutoApproveThreshold: 150000,
			VisitMilestones: []config.Milestone{
				{Visits: 3, Name: "방문 3회 쿠폰", ValidityDays: 90},
				{Visits: 6, Name: "방문 6회 쿠폰", ValidityDays: 90},
				{Visits: 9, Name: "방문 9회 쿠폰", ValidityDays: 90},
			},
			SpendTier: &config.SpendTier{
				Threshold:             200000,
				Name:                  "20만원 적립 쿠폰",
				ValidityDays:          90,
				HighValueEvery:        5,
				HighValueName:         "100만원 감사 쿠폰",
				HighValueValidityDays: 180,
			},
			RedemptionTiers: []config.RedemptionTier{
				{Level: 1, Cost: 100000, Name: "10만P 교환권", ValidityDays: 30},
				{Level: 2, Cost: 200000, Name: "20만P 교환권", ValidityDays: 30},
				{Level: 3, Cost: 300000, Name: "30만P 교환권", ValidityDays: 30},
				{Level: 4, Cost: 400000, Name: "40만P 교환권", ValidityDays: 30},
			},
			WelcomeCouponName:   "신규 가입 환영 쿠폰",
			WelcomeValidityDays: 30,
		},
	}
}

type testEnv struct {
	db         *gorm.DB
	cfg        *config.Config
	memberDAO  *dao.Member
	receiptDAO *dao.Receipt
	couponDAO  *dao.Coupon
	staffDAO   *dao.Staff

	ledger     *LedgerService
	rewards    *RewardsService
	redemption *RedemptionService
	member     *MemberService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	cfg := newTestConfig()

	memberDAO := dao.NewMember(db)
	receiptDAO := dao.NewReceipt(db)
	couponDAO := dao.NewCoupon(db)
	staffDAO := dao.NewStaff(db)

	rewards := &RewardsService{Config: cfg, DB: db, MemberDAO: memberDAO, CouponDAO: couponDAO}

	return &testEnv{
		db:         db,
		cfg:        cfg,
		memberDAO:  memberDAO,
		receiptDAO: receiptDAO,
		couponDAO:  couponDAO,
		staffDAO:   staffDAO,
		rewards:    rewards,
		ledger:     &LedgerService{Config: cfg, DB: db, MemberDAO: memberDAO, ReceiptDAO: receiptDAO, Rewards: rewards},
		redemption: &RedemptionService{Config: cfg, DB: db, CouponDAO: couponDAO, StaffDAO: staffDAO},
		member:     &MemberService{Config: cfg, DB: db, MemberDAO: memberDAO, ReceiptDAO: receiptDAO, CouponDAO: couponDAO},
	}
}

func (e *testEnv) seedMember(t *testing.T, m *models.Member) *models.Member {
	t.Helper()
	if err := e.db.Create(m).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return m
}

func (e *testEnv) reloadMember(t *testing.T, id int64) *models.Member {
	t.Helper()
	var m models.Member
	if err := e.db.First(&m, id).Error; err != nil {
		t.Fatalf("reload member %d: %v", id, err)
	}
	return &m
}
