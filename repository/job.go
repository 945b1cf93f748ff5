package repository

import (
	"context"

	"github.com/fastygo/jobboard/domain"
)

// JobFilter narrows List. An empty EmployerID lists every job.
type JobFilter struct {
	EmployerID string
}

// JobRepository persists postings. Returned jobs carry stored fields only;
// openness is annotated by the caller.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context, filter JobFilter) ([]domain.Job, error)
	Update(ctx context.Context, id string, update domain.JobUpdate) (*domain.Job, error)
	// Delete removes the job and all of its applications atomically.
	Delete(ctx context.Context, id string) error
}
