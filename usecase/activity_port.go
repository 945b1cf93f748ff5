package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/jobboard/domain"
)

// ActivityRecorder abstracts where activity entries end up so use cases stay
// storage-agnostic. Implementations may persist directly or defer to an outbox.
type ActivityRecorder interface {
	Record(ctx context.Context, activity domain.Activity) error
}

// RecordActivity hands a committed mutation to the recorder. Failures are
// logged and swallowed: the mutation has already succeeded.
func RecordActivity(ctx context.Context, recorder ActivityRecorder, logger *zap.Logger, activity domain.Activity) {
	if recorder == nil {
		return
	}
	if err := recorder.Record(ctx, activity); err != nil {
		logger.Warn("failed to record activity",
			zap.String("kind", string(activity.Kind)),
			zap.String("employer_id", activity.EmployerID),
			zap.Error(err),
		)
	}
}
