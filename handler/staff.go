package handler

import (
	"Everest/pkg/context"
	"Everest/pkg/log"
	"Everest/pkg/response"
	"Everest/service"
	"Everest/types"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Staff struct {
	RedemptionService service.IRedemptionService
}

func (h *Staff) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/staff")
	g.POST("/redeem", context.Wrap(h.Redeem))
}

// Redeem 店员在顾客手机上输 PIN 核销，失败详情只进日志不回给前端
func (h *Staff) Redeem(c *gin.Context) error {
	var req types.RedeemCouponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "参数格式错误")
	}

	resp, err := h.RedemptionService.Redeem(c.Request.Context(), req.CouponCode, req.StaffPin, req.Branch)
	if err != nil {
		log.L.Warn("coupon redeem rejected",
			zap.String("couponCode", req.CouponCode),
			zap.String("branch", req.Branch),
			zap.Error(err),
		)
		return err
	}
	response.Success(c, resp)
	return nil
}
