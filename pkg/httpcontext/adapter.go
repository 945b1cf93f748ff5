package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/jobboard/domain"
	appLogger "github.com/fastygo/jobboard/pkg/logger"
)

// Key represents a context value key exported for reuse.
type Key string

const (
	KeyRemoteAddr Key = "remote_addr"
	KeyUserAgent  Key = "user_agent"
	KeyPrincipal  Key = "principal"
)

// Adapter converts fasthttp.RequestCtx into a stdlib context with deadlines and metadata.
type Adapter struct {
	timeout time.Duration
}

// NewAdapter constructs a new Adapter using the provided timeout.
func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{
		timeout: timeout,
	}
}

// Attach creates a context with timeout derived from the adapter and enriches it with request metadata.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	reqID := RequestID(ctx)
	stdCtx = appLogger.ContextWithRequestID(stdCtx, reqID)

	if remoteAddr := ctx.RemoteAddr(); remoteAddr != nil {
		stdCtx = context.WithValue(stdCtx, KeyRemoteAddr, remoteAddr.String())
	}
	if ua := string(ctx.Request.Header.UserAgent()); ua != "" {
		stdCtx = context.WithValue(stdCtx, KeyUserAgent, ua)
	}
	if principal := Principal(ctx); principal != nil {
		stdCtx = context.WithValue(stdCtx, KeyPrincipal, principal)
	}

	return stdCtx, cancel
}

// SetPrincipal stores the authenticated principal on the request.
func SetPrincipal(ctx *fasthttp.RequestCtx, principal *domain.Principal) {
	if ctx == nil || principal == nil {
		return
	}
	ctx.SetUserValue(string(KeyPrincipal), principal)
}

// Principal returns the principal attached by the authentication middleware, or nil.
func Principal(ctx *fasthttp.RequestCtx) *domain.Principal {
	if ctx == nil {
		return nil
	}
	principal, _ := ctx.UserValue(string(KeyPrincipal)).(*domain.Principal)
	return principal
}

// BearerToken extracts the token from the Authorization header. A bare value
// without the Bearer scheme is accepted as well.
func BearerToken(ctx *fasthttp.RequestCtx) string {
	if ctx == nil {
		return ""
	}
	header := strings.TrimSpace(string(ctx.Request.Header.Peek("Authorization")))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

// RequestID returns the request id, generating and echoing one when the client sent none.
func RequestID(ctx *fasthttp.RequestCtx) string {
	if ctx == nil {
		return uuid.NewString()
	}
	if existing, ok := ctx.UserValue("request_id").(string); ok && existing != "" {
		return existing
	}
	reqID := strings.TrimSpace(string(ctx.Request.Header.Peek("X-Request-ID")))
	if reqID == "" {
		reqID = uuid.NewString()
	}
	ctx.SetUserValue("request_id", reqID)
	ctx.Response.Header.Set("X-Request-ID", reqID)
	return reqID
}
