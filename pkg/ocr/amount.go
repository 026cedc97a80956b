package ocr

import (
	"regexp"
	"strconv"
	"strings"

	"Everest/config"
)

// 金额允许区间：[100, 50,000,000)。区间外的数字不可能是一笔消费
const (
	minAmount = 100
	maxAmount = 50_000_000
)

var numberTokenRe = regexp.MustCompile(`\d[\d,]*`)

// ExtractAmount 两段式金额提取。OCR 的行对齐不可靠，金额经常掉到关键字的下一两行，
// 所以不能只看关键字所在行。
//
// 第一段：按优先级遍历金额关键字（합계 > 결제금액 > total ...），
// 命中行及其后两行内找第一个合法数字。带参照标记（승인번호/카드/전화 등）的行跳过，
// 除非金额关键字就在那一行上。
//
// 第二段：第一段一无所获时，扫全部非参照行取合法数字的最大值。
//
// 返回 0 表示提取失败
func ExtractAmount(lines []string, cfg *config.Parser) int64 {
	if amt, ok := amountByKeyword(lines, cfg); ok {
		return amt
	}
	return amountByFallback(lines, cfg)
}

func amountByKeyword(lines []string, cfg *config.Parser) (int64, bool) {
	for _, kw := range cfg.AmountKeywords {
		target := lettersOnly(kw)
		if target == "" {
			continue
		}
		for i, line := range lines {
			if !strings.Contains(lettersOnly(line), target) {
				continue
			}
			// 关键字行自身即使带参照标记也要扫：금액 和 승인번호 挤在同一行的小票并不少见
			if amt, ok := firstQualified(line); ok {
				return amt, true
			}
			for j := i + 1; j <= i+2 && j < len(lines); j++ {
				if isReferenceLine(lines[j], cfg) {
					continue
				}
				if amt, ok := firstQualified(lines[j]); ok {
					return amt, true
				}
			}
		}
	}
	return 0, false
}

func amountByFallback(lines []string, cfg *config.Parser) int64 {
	var best int64
	for _, line := range lines {
		if isReferenceLine(line, cfg) {
			continue
		}
		for _, tok := range numberTokenRe.FindAllString(normalize(line), -1) {
			if n, ok := qualify(tok); ok && n > best {
				best = n
			}
		}
	}
	return best
}

func firstQualified(line string) (int64, bool) {
	for _, tok := range numberTokenRe.FindAllString(normalize(line), -1) {
		if n, ok := qualify(tok); ok {
			return n, true
		}
	}
	return 0, false
}

// qualify 单个数字 token 是否像一笔金额。
// 8 位以上且不带千分位逗号的，几乎可以断定是承认番号/卡号之类的参照号，不是价格
func qualify(tok string) (int64, bool) {
	digits := strings.ReplaceAll(tok, ",", "")
	if len(digits) >= 8 && !strings.Contains(tok, ",") {
		return 0, false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	if n < minAmount || n >= maxAmount {
		return 0, false
	}
	return n, true
}

func isReferenceLine(line string, cfg *config.Parser) bool {
	norm := normalize(line)
	for _, kw := range cfg.ReferenceKeywords {
		if kw != "" && strings.Contains(norm, normalize(kw)) {
			return true
		}
	}
	return false
}
