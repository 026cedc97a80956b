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

type Member struct {
	MemberService service.IMemberService
}

func (h *Member) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/members")
	g.POST("/register", context.Wrap(h.Register))
	g.POST("/lookup", context.Wrap(h.Lookup))
	g.GET("/:id/dashboard", context.Wrap(h.Dashboard))
}

func (h *Member) Register(c *gin.Context) error {
	var req types.RegisterMemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "参数格式错误")
	}

	resp, err := h.MemberService.Register(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

// Lookup 手机号查会员，POST 避免号码进访问日志
func (h *Member) Lookup(c *gin.Context) error {
	var req types.LookupMemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "参数格式错误")
	}

	member, err := h.MemberService.FindByPhone(c.Request.Context(), req.Phone)
	if err != nil {
		return err
	}
	return h.dashboard(c, member.ID)
}

func (h *Member) Dashboard(c *gin.Context) error {
	memberID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.NewError(http.StatusBadRequest, "参数格式错误")
	}
	return h.dashboard(c, memberID)
}

func (h *Member) dashboard(c *gin.Context, memberID int64) error {
	resp, err := h.MemberService.Dashboard(c.Request.Context(), memberID)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
