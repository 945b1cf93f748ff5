package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/jobboard/api/handler"
)

type Handlers struct {
	Account     *apiHandler.AccountHandler
	Job         *apiHandler.JobHandler
	Application *apiHandler.ApplicationHandler
	Dashboard   *apiHandler.DashboardHandler
	Health      *apiHandler.HealthHandler
}

// New wires every route. The auth middleware wraps the whole router so that
// public routes also see the principal when a token is supplied.
func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) fasthttp.RequestHandler {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	v1 := r.Group("/api/v1")

	// Auth routes
	v1.POST("/auth/register", handlers.Account.Register)
	v1.POST("/auth/login", handlers.Account.Login)
	v1.POST("/auth/refresh", handlers.Account.Refresh)
	v1.POST("/auth/logout", handlers.Account.Logout)
	v1.GET("/auth/me", handlers.Account.Me)

	// Public listing
	v1.GET("/jobs", handlers.Job.ListPublic)

	// Employer routes
	v1.GET("/employer/jobs", handlers.Job.ListMine)
	v1.POST("/employer/jobs", handlers.Job.Create)
	v1.GET("/employer/jobs/{id}", handlers.Job.Get)
	v1.PUT("/employer/jobs/{id}", handlers.Job.Update)
	v1.DELETE("/employer/jobs/{id}", handlers.Job.Delete)
	v1.GET("/employer/jobs/{id}/applications", handlers.Application.ListForJob)
	v1.GET("/employer/dashboard", handlers.Dashboard.Dashboard)
	v1.GET("/employer/activity", handlers.Dashboard.Activity)

	// Seeker routes
	v1.POST("/applications", handlers.Application.Apply)
	v1.GET("/applications/mine", handlers.Application.ListMine)
	v1.PATCH("/applications/{id}/status", handlers.Application.UpdateStatus)

	if authMiddleware == nil {
		return r.Handler
	}
	return authMiddleware(r.Handler)
}
