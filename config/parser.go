package config

// Branch 门店与 OCR 别名关键字的映射，按顺序匹配，先命中先得
type Branch struct {
	Name    string   `json:"name" yaml:"name"`
	Aliases []string `json:"aliases" yaml:"aliases"`
}

// Parser 票据解析配置。全部外部注入，代码里不允许再出现硬编码的关键字表
type Parser struct {
	// UnknownBranch 没有命中任何别名时返回的门店名
	UnknownBranch string   `json:"unknown_branch" yaml:"unknown_branch"`
	Branches      []Branch `json:"branches" yaml:"branches"`

	// BusinessNumbers 合法的事业者登录番号白名单（真伪校验用）
	BusinessNumbers []string `json:"business_numbers" yaml:"business_numbers"`

	// AmountKeywords 金额关键字，按优先级排列（합계 > 결제금액 > total ...）
	AmountKeywords []string `json:"amount_keywords" yaml:"amount_keywords"`
	// RefundKeywords 出现即认为是退款/取消票据
	RefundKeywords []string `json:"refund_keywords" yaml:"refund_keywords"`
	// ReferenceKeywords 承认番号/卡号/电话等参照行标记，这些行上的数字不是金额
	ReferenceKeywords []string `json:"reference_keywords" yaml:"reference_keywords"`
	// ReceiptNoKeywords 票据编号（승인번호 등）的前导关键字
	ReceiptNoKeywords []string `json:"receipt_no_keywords" yaml:"receipt_no_keywords"`
}
