package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/fastygo/jobboard/domain"
	"github.com/fastygo/jobboard/internal/infrastructure/outbox"
	"github.com/fastygo/jobboard/usecase"
)

// ActivityBridge adapts the processor to the recorder port used by use cases.
// Identity and timestamp are fixed here so a replayed entry is deduplicated.
type ActivityBridge struct {
	processor *ActivityProcessor
	clock     clockwork.Clock
}

func NewActivityBridge(processor *ActivityProcessor, clock clockwork.Clock) *ActivityBridge {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ActivityBridge{processor: processor, clock: clock}
}

func (b *ActivityBridge) Record(ctx context.Context, activity domain.Activity) error {
	if b.processor == nil || activity.Kind == "" || activity.EmployerID == "" {
		return domain.ErrInvalidPayload
	}
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = b.clock.Now()
	}
	return b.processor.Submit(ctx, outbox.Item{
		ID:       activity.ID,
		Activity: activity,
	})
}

var _ usecase.ActivityRecorder = (*ActivityBridge)(nil)
