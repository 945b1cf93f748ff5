package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/jobboard/internal/infrastructure/outbox"
	"github.com/fastygo/jobboard/repository"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// ProcessorConfig controls how often the outbox is drained and swept.
type ProcessorConfig struct {
	Interval        time.Duration
	CleanupInterval time.Duration
	Retention       time.Duration
	BatchSize       int
	MaxRetries      int
	Clock           clockwork.Clock
}

// ActivityProcessor writes activity entries to the activity repository and
// parks them in the outbox while the repository is unreachable.
type ActivityProcessor struct {
	store   *outbox.Store
	monitor ConnectionHealth
	repo    repository.ActivityRepository
	logger  *zap.Logger
	cron    *cron.Cron
	cfg     ProcessorConfig
}

func NewActivityProcessor(
	store *outbox.Store,
	monitor ConnectionHealth,
	repo repository.ActivityRepository,
	logger *zap.Logger,
	cfg ProcessorConfig,
) *ActivityProcessor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Hour
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 7 * 24 * time.Hour
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ap := &ActivityProcessor{
		store:   store,
		monitor: monitor,
		repo:    repo,
		logger:  logger,
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds()),
	}

	drainSchedule := fmt.Sprintf("@every %ds", seconds(cfg.Interval))
	_, _ = ap.cron.AddFunc(drainSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := ap.Drain(ctx); err != nil {
			ap.logger.Error("outbox drain failed", zap.Error(err))
		}
	})

	cleanupSchedule := fmt.Sprintf("@every %ds", seconds(cfg.CleanupInterval))
	_, _ = ap.cron.AddFunc(cleanupSchedule, func() {
		removed, err := ap.Cleanup()
		if err != nil {
			ap.logger.Error("outbox cleanup failed", zap.Error(err))
			return
		}
		if removed > 0 {
			ap.logger.Warn("expired activity dropped from outbox", zap.Int("count", removed))
		}
	})

	return ap
}

// Start launches the cron scheduler.
func (ap *ActivityProcessor) Start() {
	if ap == nil || ap.cron == nil {
		return
	}
	ap.cron.Start()
	ap.logger.Info("activity processor started")
}

// Stop waits for running jobs or the context, whichever ends first.
func (ap *ActivityProcessor) Stop(ctx context.Context) {
	if ap == nil || ap.cron == nil {
		return
	}
	stopCtx := ap.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	ap.logger.Info("activity processor stopped")
}

// Submit writes the item straight through when storage is online and falls
// back to the outbox otherwise.
func (ap *ActivityProcessor) Submit(ctx context.Context, item outbox.Item) error {
	if ap == nil {
		return fmt.Errorf("activity processor not configured")
	}

	if ap.repo != nil && (ap.monitor == nil || ap.monitor.IsOnline()) {
		err := ap.repo.Append(ctx, item.Activity)
		if err == nil {
			return nil
		}
		ap.logger.Warn("immediate activity write failed, queueing", zap.Error(err))
	}
	if ap.store == nil {
		return fmt.Errorf("activity outbox not configured")
	}
	if item.EnqueuedAt.IsZero() {
		item.EnqueuedAt = ap.cfg.Clock.Now()
	}
	return ap.store.Enqueue(item)
}

// Drain flushes queued items in order. A failing item is retried on the next
// run until MaxRetries is reached.
func (ap *ActivityProcessor) Drain(ctx context.Context) error {
	if ap == nil || ap.store == nil || ap.repo == nil {
		return nil
	}
	if ap.monitor != nil && !ap.monitor.IsOnline() {
		ap.logger.Debug("skipping outbox drain (offline)")
		return nil
	}

	items, err := ap.store.Batch(ap.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := ap.repo.Append(ctx, item.Activity); err != nil {
			ap.logger.Error("failed to flush activity",
				zap.String("item_id", item.ID),
				zap.String("kind", string(item.Activity.Kind)),
				zap.Error(err))

			if item.Retries+1 >= ap.cfg.MaxRetries {
				ap.logger.Warn("dropping activity (max retries reached)", zap.String("item_id", item.ID))
				_ = ap.store.Remove(item)
				continue
			}
			if err := ap.store.Requeue(item); err != nil {
				ap.logger.Error("failed to requeue activity", zap.Error(err))
			}
			continue
		}

		if err := ap.store.Remove(item); err != nil {
			ap.logger.Warn("failed to purge flushed activity", zap.Error(err))
		}
	}
	return nil
}

// Cleanup drops items older than the retention window.
func (ap *ActivityProcessor) Cleanup() (int, error) {
	if ap == nil || ap.store == nil {
		return 0, nil
	}
	return ap.store.Cleanup(ap.cfg.Clock.Now().Add(-ap.cfg.Retention))
}

// Size returns the number of queued items.
func (ap *ActivityProcessor) Size() int {
	if ap == nil || ap.store == nil {
		return 0
	}
	size, err := ap.store.Size()
	if err != nil {
		return 0
	}
	return size
}

func seconds(d time.Duration) int {
	if s := int(d.Seconds()); s > 0 {
		return s
	}
	return 1
}
