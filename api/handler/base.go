package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/jobboard/api/transport"
	"github.com/fastygo/jobboard/domain"
	"github.com/fastygo/jobboard/pkg/httpcontext"
	"github.com/fastygo/jobboard/pkg/logger"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data, nil))
}

func (h baseHandler) respondList(ctx *fasthttp.RequestCtx, data interface{}, count int) {
	h.respondJSON(ctx, http.StatusOK, transport.NewList(data, count))
}

// respondError writes the domain message only; wrapped causes stay in the log.
func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status, code := mapError(err)
	message := "internal error"
	if dErr := asDomainError(err); dErr != nil && code != string(domain.ErrCodeInternal) {
		message = dErr.Message
	}
	if status >= http.StatusInternalServerError {
		reqCtx := logger.ContextWithRequestID(context.Background(), httpcontext.RequestID(ctx))
		logger.WithRequestID(reqCtx, h.logger).Error("request failed",
			zap.ByteString("path", ctx.Path()),
			zap.String("code", code),
			zap.Error(err),
		)
	}
	h.respondJSON(ctx, status, transport.NewError(code, message, nil))
}

// decode parses the JSON body into dst and answers 400 itself on failure.
func (h baseHandler) decode(ctx *fasthttp.RequestCtx, dst interface{}) bool {
	if err := json.Unmarshal(ctx.PostBody(), dst); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest,
			transport.NewError(string(domain.ErrCodeValidation), domain.ErrInvalidPayload.Message, nil))
		return false
	}
	return true
}

func pathParam(ctx *fasthttp.RequestCtx, name string) string {
	value, _ := ctx.UserValue(name).(string)
	return value
}

func asDomainError(err error) *domain.Error {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		return dErr
	}
	return nil
}

func mapError(err error) (int, string) {
	code := domain.CodeOf(err)
	switch code {
	case domain.ErrCodeUnauthenticated:
		return http.StatusUnauthorized, string(code)
	case domain.ErrCodeForbidden:
		return http.StatusForbidden, string(code)
	case domain.ErrCodeNotFound:
		return http.StatusNotFound, string(code)
	case domain.ErrCodeValidation, domain.ErrCodeJobClosed:
		return http.StatusBadRequest, string(code)
	case domain.ErrCodeDuplicateApplication, domain.ErrCodeConflict:
		return http.StatusConflict, string(code)
	case domain.ErrCodeStorageUnavailable:
		return http.StatusServiceUnavailable, string(code)
	default:
		return http.StatusInternalServerError, string(domain.ErrCodeInternal)
	}
}
