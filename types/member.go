package types

type RegisterMemberReq struct {
	Name           string `json:"name" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Branch         string `json:"branch"`
	Gender         string `json:"gender"`
	AgeGroup       string `json:"age_group"`
	AgreeMarketing bool   `json:"agree_marketing"`
	AgreePrivacy   bool   `json:"agree_privacy"`
}

type RegisterMemberResp struct {
	MemberID      int64  `json:"member_id"`
	WelcomeCoupon string `json:"welcome_coupon,omitempty"`
}

type LookupMemberReq struct {
	Phone string `json:"phone" binding:"required"`
}

type ReceiptHistoryItem struct {
	Date   string `json:"date"`
	Branch string `json:"branch"`
	Amount int64  `json:"amount"`
	Status string `json:"status"`
}

// MemberDashboardResp 会员概览：余额、到访、最近流水
type MemberDashboardResp struct {
	MemberID      int64                `json:"member_id"`
	Name          string               `json:"name"`
	VisitCount    int                  `json:"visit_count"`
	RewardBalance int64                `json:"reward_balance"`
	LifetimeSpend int64                `json:"lifetime_spend"`
	History       []ReceiptHistoryItem `json:"history"`
}
