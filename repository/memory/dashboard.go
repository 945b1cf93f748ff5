package memory

import (
	"context"

	"github.com/fastygo/jobboard/domain"
)

type dashboardRepository struct {
	s *Store
}

func (r *dashboardRepository) EmployerSnapshot(_ context.Context, employerID string) (*domain.EmployerDashboard, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stats := &domain.EmployerDashboard{}
	owned := make(map[string]struct{})
	for id, job := range r.s.jobs {
		if job.EmployerID == employerID {
			owned[id] = struct{}{}
			stats.Jobs++
		}
	}
	for _, app := range r.s.applications {
		if _, ok := owned[app.JobID]; !ok {
			continue
		}
		stats.Applications++
		switch app.Status {
		case domain.StatusAccepted:
			stats.Accepted++
		case domain.StatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}
