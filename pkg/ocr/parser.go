package ocr

import (
	"errors"
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
	"time"
	"unicode"

	"Everest/config"
)

// Parsed 从 OCR 文本里提取出来的票据事实。纯数据，不带任何 I/O
type Parsed struct {
	Branch        string `json:"branch"`
	Amount        int64  `json:"amount"` // 负数代表退款
	ReceiptNo     string `json:"receipt_no"`
	IsRefund      bool   `json:"is_refund"`
	BusinessValid bool   `json:"business_valid"`
	DateToken     string `json:"date_token"`
	Synthetic     bool   `json:"synthetic"` // ReceiptNo 是否为兜底合成
}

var ErrEmptyText = errors.New("ocr: empty text")

// Parse 解析整段 OCR 文本。确定性：同样的文本 + 同样的处理日期，输出必然一致。
// Amount == 0 表示金额提取失败，由调用方决定如何向用户反馈
func Parse(raw string, cfg *config.Parser, now time.Time) (*Parsed, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyText
	}

	clean := normalize(raw)
	lines := strings.Split(raw, "\n")

	p := &Parsed{
		Branch:        detectBranch(clean, cfg),
		BusinessValid: ContainsBusinessNumber(raw, cfg.BusinessNumbers),
		DateToken:     extractDateToken(clean, now),
	}

	p.Amount = ExtractAmount(lines, cfg)

	// 取消/退款关键字出现在任何位置都按退款处理，金额取负
	for _, kw := range cfg.RefundKeywords {
		if kw != "" && strings.Contains(clean, normalize(kw)) {
			p.IsRefund = true
			p.Amount = -p.Amount
			break
		}
	}

	if no, ok := extractReceiptNo(clean, cfg.ReceiptNoKeywords); ok {
		p.ReceiptNo = no
	} else {
		p.ReceiptNo = SyntheticReceiptNo(p.Branch, p.Amount, p.DateToken)
		p.Synthetic = true
	}

	return p, nil
}

func detectBranch(clean string, cfg *config.Parser) string {
	for _, b := range cfg.Branches {
		for _, alias := range b.Aliases {
			if alias == "" {
				continue
			}
			if strings.Contains(clean, normalize(alias)) {
				return b.Name
			}
		}
	}
	return cfg.UnknownBranch
}

// ContainsBusinessNumber 真伪校验：全文数字化后必须包含白名单里的某个事业者登录番号
func ContainsBusinessNumber(raw string, allowed []string) bool {
	digits := digitsOnly(raw)
	for _, bn := range allowed {
		want := digitsOnly(bn)
		if want != "" && strings.Contains(digits, want) {
			return true
		}
	}
	return false
}

var dateRe = regexp.MustCompile(`\d{4}[-./]\d{1,2}[-./]\d{1,2}`)

func extractDateToken(clean string, now time.Time) string {
	if m := dateRe.FindString(clean); m != "" {
		return m
	}
	return now.Format("2006-01-02")
}

// extractReceiptNo 在归一化文本里找 승인번호/일련번호 等关键字后面的 8~20 位数字串。
// 允许夹杂连字符，提取后剥掉
func extractReceiptNo(clean string, keywords []string) (string, bool) {
	if len(keywords) == 0 {
		return "", false
	}
	quoted := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(normalize(kw)))
	}
	if len(quoted) == 0 {
		return "", false
	}

	re := regexp.MustCompile(`(?:` + strings.Join(quoted, "|") + `)[:._-]*([\d-]{8,20})`)
	m := re.FindStringSubmatch(clean)
	if m == nil {
		return "", false
	}
	no := strings.ReplaceAll(m[1], "-", "")
	if len(no) < 8 || len(no) > 20 {
		return "", false
	}
	return no, true
}

// SyntheticReceiptNo 没有承认番号时的兜底票据号：门店+金额+日期 确定性合成。
// 软去重：同店同日同金额的两笔真实交易会撞号，第二笔会被当成重复票据拒掉。
// 这是沿用已有的防刷行为，改之前需要先和运营确认
func SyntheticReceiptNo(branch string, amount int64, dateToken string) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d|%s", branch, amount, dateToken)
	return fmt.Sprintf("SYN-%016X", h.Sum64())
}

// normalize 去掉所有空白并小写化，OCR 的换行和错位空格全部抹平
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// lettersOnly 只留字母（含韩文等任何 unicode 字母），关键字行匹配用
func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
