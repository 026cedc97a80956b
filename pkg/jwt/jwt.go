package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CouponClaims 优惠券魔法链接令牌。
// 会员在알림톡里点“쿠폰 확인하기”时免登录进入自己的券包
type CouponClaims struct {
	MemberID int64 `json:"member_id"`
	jwt.RegisteredClaims
}

func GenerateCouponToken(secret []byte, memberID int64, maxAge time.Duration) (string, error) {
	claims := CouponClaims{
		MemberID: memberID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "coupon-access",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(maxAge)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ParseCouponToken(secret []byte, tokenStr string) (*CouponClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CouponClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CouponClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Subject != "coupon-access" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
