package main

import (
	"context"
	"log"

	"github.com/jonboulle/clockwork"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/jobboard/api/handler"
	"github.com/fastygo/jobboard/internal/app"
	"github.com/fastygo/jobboard/internal/config"
	"github.com/fastygo/jobboard/internal/infrastructure/monitor"
	"github.com/fastygo/jobboard/internal/infrastructure/outbox"
	"github.com/fastygo/jobboard/internal/middleware"
	"github.com/fastygo/jobboard/internal/router"
	"github.com/fastygo/jobboard/internal/services"
	"github.com/fastygo/jobboard/internal/services/lifecycle"
	"github.com/fastygo/jobboard/pkg/httpcontext"
	"github.com/fastygo/jobboard/pkg/logger"
	accountUC "github.com/fastygo/jobboard/usecase/account"
	applicationUC "github.com/fastygo/jobboard/usecase/application"
	dashboardUC "github.com/fastygo/jobboard/usecase/dashboard"
	jobUC "github.com/fastygo/jobboard/usecase/job"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	clock := clockwork.NewRealClock()

	storage, err := app.OpenStorage(appCtx, cfg, clock, zapLogger)
	if err != nil {
		zapLogger.Fatal("storage init failed", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	manager.Register("storage", func(ctx context.Context) error {
		return storage.Close(zapLogger)
	})

	activityOutbox, err := outbox.Open(cfg.Activity.OutboxPath, "activity")
	if err != nil {
		zapLogger.Fatal("failed to open activity outbox", zap.Error(err))
	}
	manager.RegisterCloser("outbox", activityOutbox)

	mon := monitor.New(storage.Pool, storage.Redis, activityOutbox, cfg.Activity.MonitorInterval, zapLogger)
	mon.Start()
	manager.RegisterStop("monitor", mon.Stop)

	activityProcessor := services.NewActivityProcessor(
		activityOutbox,
		mon,
		storage.Activity,
		zapLogger,
		services.ProcessorConfig{
			Interval:        cfg.Activity.SyncInterval,
			CleanupInterval: cfg.Activity.CleanupInterval,
			Retention:       cfg.Activity.Retention,
			BatchSize:       cfg.Activity.BatchSize,
			MaxRetries:      cfg.Activity.MaxRetry,
			Clock:           clock,
		},
	)
	activityProcessor.Start()
	manager.Register("activity_processor", func(ctx context.Context) error {
		activityProcessor.Stop(ctx)
		return nil
	})

	activityBridge := services.NewActivityBridge(activityProcessor, clock)

	tokens := accountUC.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL, clock)
	accountUseCase := accountUC.New(storage.Users, storage.Sessions, tokens, clock, accountUC.Options{
		SessionTTL: cfg.Auth.SessionTTL,
		BcryptCost: cfg.Auth.BcryptCost,
	}, zapLogger)
	jobUseCase := jobUC.New(storage.Jobs, activityBridge, clock, zapLogger)
	applicationUseCase := applicationUC.New(storage.Jobs, storage.Applications, activityBridge, clock, zapLogger)
	dashboardUseCase := dashboardUC.New(storage.Dashboard, storage.Activity, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Account:     apiHandler.NewAccountHandler(accountUseCase, ctxAdapter, zapLogger),
		Job:         apiHandler.NewJobHandler(jobUseCase, ctxAdapter, zapLogger),
		Application: apiHandler.NewApplicationHandler(applicationUseCase, ctxAdapter, zapLogger),
		Dashboard:   apiHandler.NewDashboardHandler(dashboardUseCase, ctxAdapter, zapLogger),
		Health:      apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.Authenticate(accountUseCase, cfg.Context.RequestTimeout, zapLogger)
	handler := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Concurrency:  cfg.HTTP.MaxConn,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("storage", storage.Driver),
			zap.String("env", cfg.Environment),
		)
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
