package postgres

import (
	"context"

	"github.com/fastygo/jobboard/domain"
	"github.com/fastygo/jobboard/repository"
)

type dashboardRepository struct {
	db DB
}

// NewDashboardRepository returns a Postgres-backed DashboardRepository.
func NewDashboardRepository(db DB) repository.DashboardRepository {
	return &dashboardRepository{db: db}
}

// EmployerSnapshot computes all four counts in a single statement, so they come
// from the same MVCC snapshot even under concurrent status updates.
func (r *dashboardRepository) EmployerSnapshot(ctx context.Context, employerID string) (*domain.EmployerDashboard, error) {
	if !validID(employerID) {
		return &domain.EmployerDashboard{}, nil
	}
	const query = `
	SELECT
		(SELECT COUNT(*) FROM jobs WHERE employer_id = $1),
		COUNT(a.id),
		COUNT(a.id) FILTER (WHERE a.status = 'ACCEPTED'),
		COUNT(a.id) FILTER (WHERE a.status = 'REJECTED')
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	WHERE j.employer_id = $1
	`
	var stats domain.EmployerDashboard
	if err := r.db.QueryRow(ctx, query, employerID).Scan(
		&stats.Jobs,
		&stats.Applications,
		&stats.Accepted,
		&stats.Rejected,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}
