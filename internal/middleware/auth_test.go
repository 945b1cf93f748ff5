package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/jobboard/domain"
	"github.com/fastygo/jobboard/pkg/httpcontext"
)

type stubResolver map[string]*domain.Principal

func (s stubResolver) Authenticate(_ context.Context, token string) (*domain.Principal, error) {
	if token == "broken" {
		return nil, domain.StorageError(errors.New("redis: connection refused"))
	}
	if p, ok := s[token]; ok {
		return p, nil
	}
	return nil, domain.ErrUnauthenticated
}

func run(t *testing.T, header string) (*fasthttp.RequestCtx, *domain.Principal, bool) {
	t.Helper()
	resolver := stubResolver{"good": {ID: "u1", Role: domain.RoleEmployer, Active: true}}

	var (
		seen   *domain.Principal
		called bool
	)
	handler := Authenticate(resolver, 0, nil)(func(ctx *fasthttp.RequestCtx) {
		called = true
		seen = httpcontext.Principal(ctx)
	})

	var ctx fasthttp.RequestCtx
	if header != "" {
		ctx.Request.Header.Set("Authorization", header)
	}
	handler(&ctx)
	return &ctx, seen, called
}

func TestAuthenticate_ValidToken(t *testing.T) {
	_, principal, called := run(t, "Bearer good")
	assert.True(t, called)
	if assert.NotNil(t, principal) {
		assert.Equal(t, "u1", principal.ID)
	}
}

func TestAuthenticate_NoTokenPassesThrough(t *testing.T) {
	_, principal, called := run(t, "")
	assert.True(t, called)
	assert.Nil(t, principal)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	ctx, _, called := run(t, "Bearer forged")
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "UNAUTHENTICATED")
}

func TestAuthenticate_SessionStoreDown(t *testing.T) {
	ctx, _, called := run(t, "Bearer broken")
	assert.False(t, called)
	assert.Equal(t, http.StatusServiceUnavailable, ctx.Response.StatusCode())
	assert.NotContains(t, string(ctx.Response.Body()), "redis")
}
