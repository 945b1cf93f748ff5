package dashboard

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/jobboard/domain"
	"github.com/fastygo/jobboard/repository"
	"github.com/fastygo/jobboard/usecase/authz"
)

const defaultActivityLimit = 50

type UseCase struct {
	stats    repository.DashboardRepository
	activity repository.ActivityRepository
	logger   *zap.Logger
}

func New(stats repository.DashboardRepository, activity repository.ActivityRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		stats:    stats,
		activity: activity,
		logger:   logger,
	}
}

// EmployerDashboard returns the four counts over the employer's jobs, taken
// from one snapshot.
func (uc *UseCase) EmployerDashboard(ctx context.Context, principal *domain.Principal) (*domain.EmployerDashboard, error) {
	if err := authz.Require(principal, domain.RoleEmployer); err != nil {
		return nil, err
	}
	snapshot, err := uc.stats.EmployerSnapshot(ctx, principal.ID)
	if err != nil {
		uc.logger.Error("failed to load dashboard", zap.String("employer_id", principal.ID), zap.Error(err))
		return nil, domain.StorageError(err)
	}
	return snapshot, nil
}

// RecentActivity lists the activity recorded for the employer's jobs, newest first.
func (uc *UseCase) RecentActivity(ctx context.Context, principal *domain.Principal, limit int) ([]domain.Activity, error) {
	if err := authz.Require(principal, domain.RoleEmployer); err != nil {
		return nil, err
	}
	if uc.activity == nil {
		return []domain.Activity{}, nil
	}
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	items, err := uc.activity.ListByEmployer(ctx, principal.ID, limit)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	return items, nil
}
