package types

// SubmitReceiptReq OCR 文本由外部视觉服务产出，核心只消费文本
type SubmitReceiptReq struct {
	MemberID int64  `json:"member_id" binding:"required"`
	OcrText  string `json:"ocr_text" binding:"required"`
	ImageURL string `json:"image_url"`
}

type SubmitReceiptResp struct {
	Status        string   `json:"status"` // PENDING / APPROVED
	Message       string   `json:"message"`
	ReceiptNo     string   `json:"receipt_no"`
	Branch        string   `json:"branch"`
	Amount        int64    `json:"amount"`
	VisitCount    int      `json:"visit_count"`
	RewardBalance int64    `json:"reward_balance"`
	IssuedCoupons []string `json:"issued_coupon_codes"`
	// DiscardImage 已自动入账，原图可以清理（外部收尾）
	DiscardImage bool `json:"discard_image"`
}

type ApproveReceiptResp struct {
	ReceiptID     int64    `json:"receipt_id"`
	IssuedCoupons []string `json:"issued_coupon_codes"`
}

type AdjustBalanceReq struct {
	MemberID int64 `json:"member_id" binding:"required"`
	Delta    int64 `json:"delta" binding:"required"`
}
