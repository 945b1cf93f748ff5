package repository

import (
	"context"

	"github.com/fastygo/jobboard/domain"
)

type ActivityRepository interface {
	// Append is idempotent on Activity.ID so replays from the outbox are harmless.
	Append(ctx context.Context, activity domain.Activity) error
	ListByEmployer(ctx context.Context, employerID string, limit int) ([]domain.Activity, error)
}
