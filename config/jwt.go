package config

type Jwt struct {
	Secret string `json:"secret" yaml:"secret"`
	// CouponLinkMaxAgeDays 优惠券魔法链接的最长有效天数
	CouponLinkMaxAgeDays int `json:"coupon_link_max_age_days" yaml:"coupon_link_max_age_days"`
}
