package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/jobboard/api/transport"
	"github.com/fastygo/jobboard/domain"
	"github.com/fastygo/jobboard/pkg/httpcontext"
)

// PrincipalResolver turns a bearer token into the principal of a live session.
type PrincipalResolver interface {
	Authenticate(ctx context.Context, token string) (*domain.Principal, error)
}

// Authenticate attaches the principal for requests carrying a valid token.
// Requests without a token pass through so the use case decides whether
// anonymous access is allowed; a token that does not verify is answered with 401.
func Authenticate(resolver PrincipalResolver, timeout time.Duration, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			token := httpcontext.BearerToken(ctx)
			if token == "" {
				next(ctx)
				return
			}

			stdCtx, cancel := context.WithTimeout(context.Background(), timeout)
			principal, err := resolver.Authenticate(stdCtx, token)
			cancel()
			if err != nil {
				status := http.StatusUnauthorized
				code := domain.ErrCodeUnauthenticated
				message := domain.ErrUnauthenticated.Message
				if domain.IsDomainError(err, domain.ErrCodeStorageUnavailable) {
					status = http.StatusServiceUnavailable
					code = domain.ErrCodeStorageUnavailable
					message = domain.ErrStorageUnavailable.Message
					logger.Error("session lookup failed", zap.Error(err))
				} else {
					logger.Debug("rejected bearer token", zap.Error(err))
				}
				reject(ctx, status, code, message)
				return
			}

			httpcontext.SetPrincipal(ctx, principal)
			next(ctx)
		}
	}
}

func reject(ctx *fasthttp.RequestCtx, status int, code domain.ErrorCode, message string) {
	body, _ := json.Marshal(transport.NewError(string(code), message, nil))
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
