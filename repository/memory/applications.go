package memory

import (
	"context"

	"github.com/fastygo/jobboard/domain"
)

type applicationRepository struct {
	s *Store
}

// Create checks the (job, seeker) index and inserts under the same write lock,
// which is the in-memory equivalent of a unique constraint.
func (r *applicationRepository) Create(_ context.Context, app *domain.Application) (*domain.Application, error) {
	if app == nil {
		return nil, domain.ErrInvalidPayload
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.jobs[app.JobID]; !ok {
		return nil, domain.ErrJobNotFound
	}
	if _, ok := r.s.users[app.SeekerID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	key := pairKey{jobID: app.JobID, seekerID: app.SeekerID}
	if _, exists := r.s.pairs[key]; exists {
		return nil, domain.ErrDuplicateApplication
	}

	if app.ID == "" {
		app.ID = newID()
	}
	if app.Status == "" {
		app.Status = domain.StatusNew
	}
	app.AppliedAt = r.s.now()

	stored := *app
	stored.JobTitle, stored.EmployerID, stored.SeekerName, stored.SeekerEmail = "", "", "", ""
	r.s.applications[app.ID] = stored
	r.s.pairs[key] = app.ID

	enriched := r.s.enrichApplication(stored)
	return &enriched, nil
}

func (r *applicationRepository) GetByID(_ context.Context, id string) (*domain.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	app, ok := r.s.applications[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	enriched := r.s.enrichApplication(app)
	return &enriched, nil
}

func (r *applicationRepository) ListBySeeker(_ context.Context, seekerID string) ([]domain.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	apps := []domain.Application{}
	for _, app := range r.s.applications {
		if app.SeekerID == seekerID {
			apps = append(apps, r.s.enrichApplication(app))
		}
	}
	sortApplications(apps)
	return apps, nil
}

func (r *applicationRepository) ListByJob(_ context.Context, jobID string) (*domain.JobApplications, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	job, ok := r.s.jobs[jobID]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	result := &domain.JobApplications{
		Job:          r.s.enrichJob(job),
		Applications: []domain.Application{},
	}
	for _, app := range r.s.applications {
		if app.JobID == jobID {
			result.Applications = append(result.Applications, r.s.enrichApplication(app))
		}
	}
	sortApplications(result.Applications)
	return result, nil
}

func (r *applicationRepository) UpdateStatus(_ context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	app, ok := r.s.applications[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	app.Status = status
	r.s.applications[id] = app
	enriched := r.s.enrichApplication(app)
	return &enriched, nil
}
