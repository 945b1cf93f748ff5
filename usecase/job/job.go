package job

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
	jobs     repository.JobRepository
	activity usecase.ActivityRecorder
	clock    clockwork.Clock
	logger   *zap.Logger
}

func New(jobs repository.JobRepository, activity usecase.ActivityRecorder, clock clockwork.Clock, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &UseCase{
		jobs:     jobs,
		activity: activity,
		clock:    clock,
		logger:   logger,
	}
}

// CreateJob posts a job owned by the calling employer.
func (uc *UseCase) CreateJob(ctx context.Context, principal *domain.Principal, input domain.JobInput) (*domain.Job, error) {
	if err := authz.Require(principal, domain.RoleEmployer); err != nil {
		return nil, err
	}
	if err := input.Validate(uc.clock.Now()); err != nil {
		return nil, err
	}

	created, err := uc.jobs.Create(ctx, &domain.Job{
		EmployerID:          principal.ID,
		Title:               input.Title,
		Description:         input.Description,
		Location:            input.Location,
		EmploymentType:      input.EmploymentType,
		ApplicationDeadline: input.ApplicationDeadline,
	})
	if err != nil {
		uc.logger.Error("failed to create job", zap.String("employer_id", principal.ID), zap.Error(err))
		return nil, domain.StorageError(err)
	}
	created.Annotate(uc.clock.Now())

	usecase.RecordActivity(ctx, uc.activity, uc.logger, domain.Activity{
		Kind:       domain.ActivityJobCreated,
		ActorID:    principal.ID,
		EmployerID: principal.ID,
		JobID:      created.ID,
		Metadata:   map[string]string{"title": created.Title},
	})
	return created, nil
}

// ListPublicJobs returns every job regardless of openness. Application counts
// are an employer concern and are stripped.
func (uc *UseCase) ListPublicJobs(ctx context.Context) ([]domain.Job, error) {
	jobs, err := uc.jobs.List(ctx, repository.JobFilter{})
	if err != nil {
		return nil, domain.StorageError(err)
	}
	now := uc.clock.Now()
	for i := range jobs {
		jobs[i].ApplicationCount = nil
		jobs[i].Annotate(now)
	}
	return jobs, nil
}

func (uc *UseCase) ListEmployerJobs(ctx context.Context, principal *domain.Principal) ([]domain.Job, error) {
	if err := authz.Require(principal, domain.RoleEmployer); err != nil {
		return nil, err
	}
	jobs, err := uc.jobs.List(ctx, repository.JobFilter{EmployerID: principal.ID})
	if err != nil {
		return nil, domain.StorageError(err)
	}
	now := uc.clock.Now()
	for i := range jobs {
		jobs[i].Annotate(now)
	}
	return jobs, nil
}

func (uc *UseCase) GetJob(ctx context.Context, principal *domain.Principal, id string) (*domain.Job, error) {
	job, err := uc.ownedJob(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	job.Annotate(uc.clock.Now())
	return job, nil
}

// UpdateJob applies a partial update. The deadline is re-validated only when supplied.
func (uc *UseCase) UpdateJob(ctx context.Context, principal *domain.Principal, id string, update domain.JobUpdate) (*domain.Job, error) {
	current, err := uc.ownedJob(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	if err := update.Validate(now); err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		current.Annotate(now)
		return current, nil
	}

	updated, err := uc.jobs.Update(ctx, id, update)
	if err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			uc.logger.Error("failed to update job", zap.String("job_id", id), zap.Error(err))
		}
		return nil, domain.StorageError(err)
	}
	updated.Annotate(uc.clock.Now())

	usecase.RecordActivity(ctx, uc.activity, uc.logger, domain.Activity{
		Kind:       domain.ActivityJobUpdated,
		ActorID:    principal.ID,
		EmployerID: principal.ID,
		JobID:      updated.ID,
		Metadata:   map[string]string{"title": updated.Title},
	})
	return updated, nil
}

// DeleteJob removes the job together with all of its applications.
func (uc *UseCase) DeleteJob(ctx context.Context, principal *domain.Principal, id string) error {
	current, err := uc.ownedJob(ctx, principal, id)
	if err != nil {
		return err
	}
	if err := uc.jobs.Delete(ctx, id); err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			uc.logger.Error("failed to delete job", zap.String("job_id", id), zap.Error(err))
		}
		return domain.StorageError(err)
	}

	usecase.RecordActivity(ctx, uc.activity, uc.logger, domain.Activity{
		Kind:       domain.ActivityJobDeleted,
		ActorID:    principal.ID,
		EmployerID: principal.ID,
		JobID:      id,
		Metadata:   map[string]string{"title": current.Title},
	})
	return nil
}

// ownedJob runs the role check, loads the job and then checks ownership, in
// that order, so a missing job is NotFound and a foreign one is Forbidden.
func (uc *UseCase) ownedJob(ctx context.Context, principal *domain.Principal, id string) (*domain.Job, error) {
	if err := authz.Require(principal, domain.RoleEmployer); err != nil {
		return nil, err
	}
	job, err := uc.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if !authz.OwnsJob(principal, job) {
		uc.logger.Debug("job ownership check failed", zap.String("job_id", id), zap.String("principal_id", principal.ID))
		return nil, domain.ErrNotJobOwner
	}
	return job, nil
}
