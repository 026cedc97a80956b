package config

// Milestone 按到访次数精确触发的奖励（第3/6/9次等）
type Milestone struct {
	Visits       int    `json:"visits" yaml:"visits"`
	Name         string `json:"name" yaml:"name"`
	ValidityDays int    `json:"validity_days" yaml:"validity_days"`
}

// SpendTier 累计消费满档奖励。每满 Threshold 发一张；
// 每第 HighValueEvery 张升级为高价值奖励（有效期更长）
type SpendTier struct {
	Threshold             int64  `json:"threshold" yaml:"threshold"`
	Name                  string `json:"name" yaml:"name"`
	ValidityDays          int    `json:"validity_days" yaml:"validity_days"`
	HighValueEvery        int    `json:"high_value_every" yaml:"high_value_every"`
	HighValueName         string `json:"high_value_name" yaml:"high_value_name"`
	HighValueValidityDays int    `json:"high_value_validity_days" yaml:"high_value_validity_days"`
}

// RedemptionTier 用户主动用积分兑换的奖励档位
type RedemptionTier struct {
	Level        int    `json:"level" yaml:"level"`
	Cost         int64  `json:"cost" yaml:"cost"`
	Name         string `json:"name" yaml:"name"`
	ValidityDays int    `json:"validity_days" yaml:"validity_days"`
}

type Rewards struct {
	// AutoApproveThreshold 低于该金额的票据直接入账，否则挂 PENDING 等人工审核
	AutoApproveThreshold int64            `json:"auto_approve_threshold" yaml:"auto_approve_threshold"`
	VisitMilestones      []Milestone      `json:"visit_milestones" yaml:"visit_milestones"`
	SpendTier            *SpendTier       `json:"spend_tier" yaml:"spend_tier"`
	RedemptionTiers      []RedemptionTier `json:"redemption_tiers" yaml:"redemption_tiers"`

	WelcomeCouponName   string `json:"welcome_coupon_name" yaml:"welcome_coupon_name"`
	WelcomeValidityDays int    `json:"welcome_validity_days" yaml:"welcome_validity_days"`
}

// TierByLevel 找不到返回 nil，调用方负责映射成 InvalidTier 错误
func (r *Rewards) TierByLevel(level int) *RedemptionTier {
	for i := range r.RedemptionTiers {
		if r.RedemptionTiers[i].Level == level {
			return &r.RedemptionTiers[i]
		}
	}
	return nil
}
