package memory

import (
	"context"

	"github.com/fastygo/jobboard/domain"
	"github.com/fastygo/jobboard/repository"
)

type jobRepository struct {
	s *Store
}

func (r *jobRepository) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	if job == nil {
		return nil, domain.ErrInvalidPayload
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[job.EmployerID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	if job.ID == "" {
		job.ID = newID()
	}
	job.CreatedAt = r.s.now()
	stored := *job
	stored.EmployerName, stored.ApplicationCount = "", nil
	stored.IsOpen, stored.Status = false, ""
	r.s.jobs[job.ID] = stored

	enriched := r.s.enrichJob(stored)
	return &enriched, nil
}

func (r *jobRepository) GetByID(_ context.Context, id string) (*domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	job, ok := r.s.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	enriched := r.s.enrichJob(job)
	return &enriched, nil
}

func (r *jobRepository) List(_ context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	jobs := []domain.Job{}
	for _, job := range r.s.jobs {
		if filter.EmployerID != "" && job.EmployerID != filter.EmployerID {
			continue
		}
		jobs = append(jobs, r.s.enrichJob(job))
	}
	sortJobs(jobs)
	return jobs, nil
}

func (r *jobRepository) Update(_ context.Context, id string, update domain.JobUpdate) (*domain.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	job, ok := r.s.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	update.ApplyTo(&job)
	r.s.jobs[id] = job
	enriched := r.s.enrichJob(job)
	return &enriched, nil
}

func (r *jobRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.s.jobs, id)
	for appID, app := range r.s.applications {
		if app.JobID != id {
			continue
		}
		delete(r.s.applications, appID)
		delete(r.s.pairs, pairKey{jobID: app.JobID, seekerID: app.SeekerID})
	}
	return nil
}
