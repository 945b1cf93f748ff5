package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/jobboard/api/transport"
	"github.com/fastygo/jobboard/pkg/httpcontext"
	jobUC "github.com/fastygo/jobboard/usecase/job"
)

type JobHandler struct {
	baseHandler
	uc *jobUC.UseCase
}

func NewJobHandler(uc *jobUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List every job with its open state
// @Tags jobs
// @Router /api/v1/jobs [get]
func (h *JobHandler) ListPublic(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	jobs, err := h.uc.ListPublicJobs(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondList(ctx, jobs, len(jobs))
}

// @Summary List the employer's own jobs
// @Tags employer
// @Router /api/v1/employer/jobs [get]
func (h *JobHandler) ListMine(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	jobs, err := h.uc.ListEmployerJobs(stdCtx, httpcontext.Principal(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondList(ctx, jobs, len(jobs))
}

// @Summary Post a job
// @Tags employer
// @Router /api/v1/employer/jobs [post]
func (h *JobHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.JobRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	job, err := h.uc.CreateJob(stdCtx, httpcontext.Principal(ctx), req.Input())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, job)
}

// @Summary Get an owned job
// @Tags employer
// @Router /api/v1/employer/jobs/{id} [get]
func (h *JobHandler) Get(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	job, err := h.uc.GetJob(stdCtx, httpcontext.Principal(ctx), pathParam(ctx, "id"))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, job)
}

// @Summary Partially update an owned job
// @Tags employer
// @Router /api/v1/employer/jobs/{id} [put]
func (h *JobHandler) Update(ctx *fasthttp.RequestCtx) {
	var req transport.JobUpdateRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	job, err := h.uc.UpdateJob(stdCtx, httpcontext.Principal(ctx), pathParam(ctx, "id"), req.Update())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, job)
}

// @Summary Delete an owned job and its applications
// @Tags employer
// @Router /api/v1/employer/jobs/{id} [delete]
func (h *JobHandler) Delete(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteJob(stdCtx, httpcontext.Principal(ctx), pathParam(ctx, "id")); err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.SetStatusCode(http.StatusNoContent)
}
