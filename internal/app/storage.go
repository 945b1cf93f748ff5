package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goRedis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fastygo/jobboard/internal/config"
	pgInfra "github.com/fastygo/jobboard/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/jobboard/internal/infrastructure/redis"
	"github.com/fastygo/jobboard/repository"
	"github.com/fastygo/jobboard/repository/memory"
	"github.com/fastygo/jobboard/repository/postgres"
	redisRepo "github.com/fastygo/jobboard/repository/redis"
)

// Storage bundles the repositories selected by STORAGE_DRIVER.
// Pool and Redis stay nil for the in-memory driver.
type Storage struct {
	Driver       string
	Users        repository.UserRepository
	Jobs         repository.JobRepository
	Applications repository.ApplicationRepository
	Dashboard    repository.DashboardRepository
	Activity     repository.ActivityRepository
	Sessions     repository.SessionRepository

	Pool  *pgxpool.Pool
	Redis *goRedis.Client
}

// OpenStorage connects the configured backend. Migrations run first for postgres.
func OpenStorage(ctx context.Context, cfg *config.Config, clock clockwork.Clock, logger *zap.Logger) (*Storage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		store := memory.New(clock)
		logger.Warn("using in-memory storage, data is lost on restart")
		return &Storage{
			Driver:       cfg.StorageDriver,
			Users:        store.Users(),
			Jobs:         store.Jobs(),
			Applications: store.Applications(),
			Dashboard:    store.Dashboard(),
			Activity:     store.Activity(),
			Sessions:     store.Sessions(),
		}, nil

	case config.StorageDriverPostgres:
		if err := pgInfra.RunMigrations(cfg, logger); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}

		pool, err := pgInfra.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}

		redisClient, err := redisInfra.NewClient(cfg.Redis)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}

		return &Storage{
			Driver:       cfg.StorageDriver,
			Users:        postgres.NewUserRepository(pool),
			Jobs:         postgres.NewJobRepository(pool),
			Applications: postgres.NewApplicationRepository(pool),
			Dashboard:    postgres.NewDashboardRepository(pool),
			Activity:     postgres.NewActivityRepository(pool),
			Sessions:     redisRepo.NewSessionRepository(redisClient, cfg.Auth.SessionTTL),
			Pool:         pool,
			Redis:        redisClient,
		}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

// Close releases the connections opened by OpenStorage.
func (s *Storage) Close(logger *zap.Logger) error {
	if s == nil {
		return nil
	}
	var err error
	if s.Redis != nil {
		err = s.Redis.Close()
	}
	pgInfra.Close(s.Pool, logger)
	return err
}
