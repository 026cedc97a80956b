package handler

import (
	"Everest/config"
	"Everest/pkg/context"
	"Everest/pkg/log"
	"Everest/pkg/ocr"
	"Everest/pkg/response"
	"Everest/service"
	"Everest/types"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Receipt struct {
	Config        *config.Config
	LedgerService service.ILedgerService
}

func (h *Receipt) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/receipts")
	g.POST("/submit", context.Wrap(h.Submit))
	g.POST("/:id/approve", context.Wrap(h.Approve))
	g.POST("/adjust-balance", context.Wrap(h.AdjustBalance))
}

// Submit 识别文本由小程序侧的视觉服务产出，这里只做解析和入账
func (h *Receipt) Submit(c *gin.Context) error {
	var req types.SubmitReceiptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "参数格式错误")
	}

	parsed, err := ocr.Parse(req.OcrText, h.Config.Parser, time.Now())
	if err != nil {
		if errors.Is(err, ocr.ErrEmptyText) {
			return response.ErrParseFailure
		}
		return err
	}
	log.L.Info("receipt parsed",
		zap.Int64("memberId", req.MemberID),
		zap.String("branch", parsed.Branch),
		zap.Int64("amount", parsed.Amount),
		zap.Bool("synthetic", parsed.Synthetic),
	)

	resp, err := h.LedgerService.Submit(c.Request.Context(), req.MemberID, parsed, req.ImageURL)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (h *Receipt) Approve(c *gin.Context) error {
	receiptID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.NewError(http.StatusBadRequest, "参数格式错误")
	}

	resp, err := h.LedgerService.Approve(c.Request.Context(), receiptID)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

// AdjustBalance 管理侧改单/删单的冲正接口
func (h *Receipt) AdjustBalance(c *gin.Context) error {
	var req types.AdjustBalanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "参数格式错误")
	}

	if err := h.LedgerService.AdjustBalance(c.Request.Context(), req.MemberID, req.Delta); err != nil {
		return err
	}
	response.Success(c, "잔액이 조정되었습니다.")
	return nil
}
