package repository

import (
	"context"

	"github.com/fastygo/jobboard/domain"
)

type DashboardRepository interface {
	// EmployerSnapshot computes every count from a single consistent read.
	EmployerSnapshot(ctx context.Context, employerID string) (*domain.EmployerDashboard, error)
}
