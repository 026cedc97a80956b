package types

type ClaimRewardReq struct {
	MemberID  int64 `json:"member_id" binding:"required"`
	TierLevel int   `json:"tier_level" binding:"required"`
}

type ClaimRewardResp struct {
	CouponCode       string `json:"coupon_code"`
	CouponName       string `json:"coupon_name"`
	RemainingBalance int64  `json:"remaining_balance"`
	ExpiryAt         string `json:"expiry_at"` // 2006-01-02
}

type RedeemCouponReq struct {
	CouponCode string `json:"coupon_code" binding:"required"`
	StaffPin   string `json:"staff_pin" binding:"required"`
	Branch     string `json:"branch" binding:"required"`
}

type RedeemCouponResp struct {
	Message    string `json:"message"`
	CouponName string `json:"coupon_name"`
}

type CouponItem struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	IssuedAt string `json:"issued_at"`
	ExpiryAt string `json:"expiry_at"`
	UsedAt   string `json:"used_at,omitempty"`
}

// CouponWalletResp 券包：可用在前，用过/过期的归到 inactive
type CouponWalletResp struct {
	Active   []CouponItem `json:"active"`
	Inactive []CouponItem `json:"inactive"`
}
