package application

import (
	"context"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/fastygo/jobboard/domain"
	"github.com/fastygo/jobboard/repository"
	"github.com/fastygo/jobboard/usecase"
	"github.com/fastygo/jobboard/usecase/authz"
)

type UseCase struct {
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	activity     usecase.ActivityRecorder
	clock        clockwork.Clock
	logger       *zap.Logger
}

func New(
	jobs repository.JobRepository,
	applications repository.ApplicationRepository,
	activity usecase.ActivityRecorder,
	clock clockwork.Clock,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &UseCase{
		jobs:         jobs,
		applications: applications,
		activity:     activity,
		clock:        clock,
		logger:       logger,
	}
}

// Apply submits the seeker's application. Openness is checked at the instant of
// the call; uniqueness of (job, seeker) is left to the repository's atomic insert.
func (uc *UseCase) Apply(ctx context.Context, principal *domain.Principal, jobID, resumeReference string) (*domain.Application, error) {
	if err := authz.Require(principal, domain.RoleSeeker); err != nil {
		return nil, err
	}

	job, err := uc.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if !job.OpenAt(uc.clock.Now()) {
		return nil, domain.ErrJobClosed
	}
	if err := domain.ValidateResumeReference(resumeReference); err != nil {
		return nil, err
	}

	created, err := uc.applications.Create(ctx, &domain.Application{
		JobID:           job.ID,
		SeekerID:        principal.ID,
		ResumeReference: resumeReference,
		Status:          domain.StatusNew,
	})
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeDuplicateApplication) {
			uc.logger.Debug("duplicate application rejected", zap.String("job_id", jobID), zap.String("seeker_id", principal.ID))
		} else if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			uc.logger.Error("failed to create application", zap.String("job_id", jobID), zap.Error(err))
		}
		return nil, domain.StorageError(err)
	}

	employerID := created.EmployerID
	if employerID == "" {
		employerID = job.EmployerID
	}
	usecase.RecordActivity(ctx, uc.activity, uc.logger, domain.Activity{
		Kind:          domain.ActivityApplicationCreated,
		ActorID:       principal.ID,
		EmployerID:    employerID,
		JobID:         job.ID,
		ApplicationID: created.ID,
	})
	return created, nil
}

// ListForSeeker returns the seeker's own applications, newest first.
func (uc *UseCase) ListForSeeker(ctx context.Context, principal *domain.Principal) ([]domain.Application, error) {
	if err := authz.Require(principal, domain.RoleSeeker); err != nil {
		return nil, err
	}
	apps, err := uc.applications.ListBySeeker(ctx, principal.ID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	return apps, nil
}

// ListForJob returns the job and its applications from a single snapshot, so
// a concurrent delete is observed either entirely or not at all.
func (uc *UseCase) ListForJob(ctx context.Context, principal *domain.Principal, jobID string) (*domain.JobApplications, error) {
	if err := authz.Require(principal, domain.RoleEmployer); err != nil {
		return nil, err
	}
	result, err := uc.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if !authz.OwnsJob(principal, &result.Job) {
		return nil, domain.ErrNotJobOwner
	}
	result.Job.Annotate(uc.clock.Now())
	return result, nil
}

// UpdateStatus moves an application to any of the four statuses. Transitions
// are not restricted: the employer may revert an accepted or rejected decision.
func (uc *UseCase) UpdateStatus(ctx context.Context, principal *domain.Principal, applicationID, status string) (*domain.Application, error) {
	if err := authz.Require(principal, domain.RoleEmployer); err != nil {
		return nil, err
	}
	current, err := uc.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if !authz.OwnsApplicationViaJob(principal, current) {
		return nil, domain.ErrNotApplicationOwner
	}
	next, err := domain.ParseApplicationStatus(status)
	if err != nil {
		return nil, err
	}

	updated, err := uc.applications.UpdateStatus(ctx, applicationID, next)
	if err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			uc.logger.Error("failed to update application status", zap.String("application_id", applicationID), zap.Error(err))
		}
		return nil, domain.StorageError(err)
	}

	usecase.RecordActivity(ctx, uc.activity, uc.logger, domain.Activity{
		Kind:          domain.ActivityStatusChanged,
		ActorID:       principal.ID,
		EmployerID:    principal.ID,
		JobID:         updated.JobID,
		ApplicationID: updated.ID,
		Metadata: map[string]string{
			"from": string(current.Status),
			"to":   string(updated.Status),
		},
	})
	return updated, nil
}
