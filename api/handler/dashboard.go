package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/jobboard/pkg/httpcontext"
	dashboardUC "github.com/fastygo/jobboard/usecase/dashboard"
)

type DashboardHandler struct {
	baseHandler
	uc *dashboardUC.UseCase
}

func NewDashboardHandler(uc *dashboardUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Employer dashboard counts
// @Tags employer
// @Router /api/v1/employer/dashboard [get]
func (h *DashboardHandler) Dashboard(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.EmployerDashboard(stdCtx, httpcontext.Principal(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}

// @Summary Recent activity on the employer's jobs
// @Tags employer
// @Router /api/v1/employer/activity [get]
func (h *DashboardHandler) Activity(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	limit, _ := strconv.Atoi(string(ctx.QueryArgs().Peek("limit")))
	items, err := h.uc.RecentActivity(stdCtx, httpcontext.Principal(ctx), limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondList(ctx, items, len(items))
}
