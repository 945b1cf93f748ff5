package repository

import (
	"context"

	"github.com/fastygo/jobboard/domain"
)

type ApplicationRepository interface {
	// Create is an atomic constrained insert: a second application for the same
	// (job, seeker) pair fails with domain.ErrDuplicateApplication and a missing
	// job fails with domain.ErrJobNotFound.
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
	// GetByID returns the application with EmployerID resolved through its job.
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	// ListBySeeker returns the seeker's applications, newest first.
	ListBySeeker(ctx context.Context, seekerID string) ([]domain.Application, error)
	// ListByJob reads a job and its applications from one snapshot.
	ListByJob(ctx context.Context, jobID string) (*domain.JobApplications, error)
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error)
}
