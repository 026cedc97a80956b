package response

type BizError struct {
	Code int
	Msg  string
}

func (e *BizError) Error() string {
	return e.Msg
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

// 业务错误码表。全部可恢复，由调用方决定是否重试（比如换一张更清晰的照片）
var (
	ErrParseFailure        = NewError(41001, "영수증 글자를 읽을 수 없습니다. 명확한 사진으로 다시 시도해 주세요.")
	ErrAuthenticityFailure = NewError(41002, "당사 매장의 영수증이 아닙니다. (사업자번호 확인 실패)")
	ErrDuplicateReceipt    = NewError(41003, "이미 등록된 영수증입니다. 같은 영수증은 두 번 등록할 수 없습니다.")
	ErrDailyCapExceeded    = NewError(41004, "하루에 한 번만 적립 가능합니다. (내일 다시 방문해주세요!)")

	ErrInsufficientBalance = NewError(42001, "포인트가 부족합니다.")
	ErrInvalidTier         = NewError(42002, "잘못된 리워드 등급입니다.")

	ErrCouponNotFound    = NewError(43001, "유효하지 않은 쿠폰 코드입니다.")
	ErrCouponAlreadyUsed = NewError(43002, "이미 사용된 쿠폰입니다.")
	ErrCouponExpired     = NewError(43003, "유효기간이 만료된 쿠폰입니다.")
	ErrStaffAuthFailure  = NewError(43004, "직원 인증 실패: PIN 번호가 올바르지 않습니다.")

	ErrMemberNotFound = NewError(44001, "회원 정보를 찾을 수 없습니다.")
)
