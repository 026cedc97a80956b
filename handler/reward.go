package handler

import (
	"Everest/pkg/context"
	"Everest/pkg/response"
	"Everest/service"
	"Everest/types"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Reward struct {
	RewardsService service.IRewardsService
	MemberService  service.IMemberService
}

func (h *Reward) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/rewards")
	g.POST("/claim", context.Wrap(h.Claim))
	g.GET("/wallet/:member_id", context.Wrap(h.Wallet))
	g.GET("/wallet", context.Wrap(h.WalletByToken))
}

func (h *Reward) Claim(c *gin.Context) error {
	var req types.ClaimRewardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "参数格式错误")
	}

	resp, err := h.RewardsService.Claim(c.Request.Context(), req.MemberID, req.TierLevel)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (h *Reward) Wallet(c *gin.Context) error {
	memberID, err := strconv.ParseInt(c.Param("member_id"), 10, 64)
	if err != nil {
		return response.NewError(http.StatusBadRequest, "参数格式错误")
	}

	resp, err := h.MemberService.CouponWallet(c.Request.Context(), memberID)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

// WalletByToken 알림톡 链接带 token 免登录查券包
func (h *Reward) WalletByToken(c *gin.Context) error {
	token := c.Query("token")
	if token == "" {
		return response.NewError(http.StatusBadRequest, "参数格式错误")
	}

	memberID, err := h.MemberService.ResolveCouponLink(token)
	if err != nil {
		return err
	}
	resp, err := h.MemberService.CouponWallet(c.Request.Context(), memberID)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
