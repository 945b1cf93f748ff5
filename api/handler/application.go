package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/jobboard/api/transport"
	"github.com/fastygo/jobboard/pkg/httpcontext"
	applicationUC "github.com/fastygo/jobboard/usecase/application"
)

type ApplicationHandler struct {
	baseHandler
	uc *applicationUC.UseCase
}

func NewApplicationHandler(uc *applicationUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Apply to a job
// @Tags applications
// @Router /api/v1/applications [post]
func (h *ApplicationHandler) Apply(ctx *fasthttp.RequestCtx) {
	var req transport.ApplyRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	app, err := h.uc.Apply(stdCtx, httpcontext.Principal(ctx), req.JobID, req.ResumeReference)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, app)
}

// @Summary List the seeker's applications
// @Tags applications
// @Router /api/v1/applications/mine [get]
func (h *ApplicationHandler) ListMine(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	apps, err := h.uc.ListForSeeker(stdCtx, httpcontext.Principal(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondList(ctx, apps, len(apps))
}

// @Summary List applications of an owned job
// @Tags employer
// @Router /api/v1/employer/jobs/{id}/applications [get]
func (h *ApplicationHandler) ListForJob(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.ListForJob(stdCtx, httpcontext.Principal(ctx), pathParam(ctx, "id"))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondList(ctx, result, len(result.Applications))
}

// @Summary Change an application's status
// @Tags employer
// @Router /api/v1/applications/{id}/status [patch]
func (h *ApplicationHandler) UpdateStatus(ctx *fasthttp.RequestCtx) {
	var req transport.StatusRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	app, err := h.uc.UpdateStatus(stdCtx, httpcontext.Principal(ctx), pathParam(ctx, "id"), req.Status)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, app)
}
