package coupon

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	hashids "github.com/speps/go-hashids/v2"
)

// 里程碑/消费档的券码必须可重放推导：同一个会员的同一个里程碑，
// 任何时候算出来的都是同一个码，配合券码唯一索引天然防重复发放。
// 兑换券和欢迎券是一次性动作，用随机码即可（沿用 CP-/WC- 前缀）

var hd *hashids.HashID

func init() {
	data := hashids.NewData()
	data.Salt = "everest-coupon-code"
	data.MinLength = 10

	var err error
	hd, err = hashids.NewWithData(data)
	if err != nil {
		// 参数是编译期常量，失败只可能是配置写错，启动即炸
		panic(err)
	}
}

// VisitCode 到访里程碑券码，会员+里程碑 确定性推导
func VisitCode(memberID int64, milestone int) string {
	code, _ := hd.EncodeInt64([]int64{1, memberID, int64(milestone)})
	return "VM-" + strings.ToUpper(code)
}

// SpendCode 消费档券码，seq 从 1 开始顺序递增
func SpendCode(memberID int64, seq int) string {
	code, _ := hd.EncodeInt64([]int64{2, memberID, int64(seq)})
	return "SP-" + strings.ToUpper(code)
}

// ClaimCode 积分兑换券码
func ClaimCode() string {
	return "CP-" + randomSuffix()
}

// WelcomeCode 新会员欢迎券码
func WelcomeCode() string {
	return "WC-" + randomSuffix()
}

func randomSuffix() string {
	return strings.ToUpper(fmt.Sprintf("%.8s", strings.ReplaceAll(uuid.NewString(), "-", "")))
}
