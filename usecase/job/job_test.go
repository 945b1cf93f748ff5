package job

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/jobboard/domain"
	"github.com/fastygo/jobboard/repository"
	"github.com/fastygo/jobboard/repository/memory"
)

type recorder struct {
	mu    sync.Mutex
	items []domain.Activity
}

func (r *recorder) Record(_ context.Context, activity domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, activity)
	return nil
}

func (r *recorder) kinds() []domain.ActivityKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ActivityKind, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item.Kind)
	}
	return out
}

type env struct {
	uc       *UseCase
	store    *memory.Store
	clock    *clockwork.FakeClock
	activity *recorder
	employer *domain.Principal
	rival    *domain.Principal
	seeker   *domain.Principal
}

func newEnv(t *testing.T) *env {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	store := memory.New(clock)
	activity := &recorder{}

	mk := func(email string, role domain.Role) *domain.Principal {
		user, err := store.Users().Create(context.Background(), &domain.User{Email: email, FullName: email, Role: role, Active: true})
		require.NoError(t, err)
		return user.Principal()
	}

	return &env{
		uc:       New(store.Jobs(), activity, clock, nil),
		store:    store,
		clock:    clock,
		activity: activity,
		employer: mk("hr@acme.io", domain.RoleEmployer),
		rival:    mk("hr@rival.io", domain.RoleEmployer),
		seeker:   mk("sam@mail.io", domain.RoleSeeker),
	}
}

func (e *env) input(deadline time.Duration) domain.JobInput {
	return domain.JobInput{
		Title:               "Backend Engineer",
		Description:         "Build services",
		Location:            "Berlin",
		EmploymentType:      domain.EmploymentFullTime,
		ApplicationDeadline: e.clock.Now().Add(deadline),
	}
}

func TestCreateJob(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	job, err := e.uc.CreateJob(ctx, e.employer, e.input(30*24*time.Hour))
	require.NoError(t, err)
	assert.True(t, job.IsOpen)
	assert.Equal(t, domain.JobStatusOpen, job.Status)
	assert.Equal(t, e.employer.ID, job.EmployerID)
	assert.Equal(t, []domain.ActivityKind{domain.ActivityJobCreated}, e.activity.kinds())
}

func TestCreateJob_Rejections(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.uc.CreateJob(ctx, nil, e.input(time.Hour))
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = e.uc.CreateJob(ctx, e.seeker, e.input(time.Hour))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.uc.CreateJob(ctx, e.employer, e.input(0))
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))

	_, err = e.uc.CreateJob(ctx, e.employer, e.input(-5*24*time.Hour))
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))

	assert.Empty(t, e.activity.kinds())
}

func TestListPublicJobs_OpennessFollowsClock(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.uc.CreateJob(ctx, e.employer, e.input(time.Hour))
	require.NoError(t, err)

	jobs, err := e.uc.ListPublicJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.True(t, jobs[0].IsOpen)
	assert.Nil(t, jobs[0].ApplicationCount)

	e.clock.Advance(time.Hour)
	jobs, err = e.uc.ListPublicJobs(ctx)
	require.NoError(t, err)
	assert.True(t, jobs[0].IsOpen, "the deadline instant is still open")

	e.clock.Advance(time.Nanosecond)
	jobs, err = e.uc.ListPublicJobs(ctx)
	require.NoError(t, err)
	assert.False(t, jobs[0].IsOpen)
	assert.Equal(t, domain.JobStatusClosed, jobs[0].Status)
}

func TestListEmployerJobs_OnlyOwn(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	mine, err := e.uc.CreateJob(ctx, e.employer, e.input(time.Hour))
	require.NoError(t, err)
	_, err = e.uc.CreateJob(ctx, e.rival, e.input(time.Hour))
	require.NoError(t, err)

	jobs, err := e.uc.ListEmployerJobs(ctx, e.employer)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, mine.ID, jobs[0].ID)
	require.NotNil(t, jobs[0].ApplicationCount)

	_, err = e.uc.ListEmployerJobs(ctx, e.seeker)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestObjectLevelChecks_NotFoundBeforeForbidden(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	job, err := e.uc.CreateJob(ctx, e.employer, e.input(time.Hour))
	require.NoError(t, err)
	title := "Changed"

	_, err = e.uc.GetJob(ctx, e.rival, "missing")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
	_, err = e.uc.GetJob(ctx, e.rival, job.ID)
	assert.ErrorIs(t, err, domain.ErrNotJobOwner)
	_, err = e.uc.UpdateJob(ctx, e.rival, job.ID, domain.JobUpdate{Title: &title})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
	err = e.uc.DeleteJob(ctx, e.rival, job.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
	err = e.uc.DeleteJob(ctx, e.seeker, job.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := e.uc.GetJob(ctx, e.employer, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", got.Title)
}

func TestUpdateJob_Partial(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	job, err := e.uc.CreateJob(ctx, e.employer, e.input(time.Hour))
	require.NoError(t, err)

	// Once the deadline has passed, edits that leave it alone still succeed.
	e.clock.Advance(2 * time.Hour)
	location := "Remote"
	updated, err := e.uc.UpdateJob(ctx, e.employer, job.ID, domain.JobUpdate{Location: &location})
	require.NoError(t, err)
	assert.Equal(t, "Remote", updated.Location)
	assert.Equal(t, job.Title, updated.Title)
	assert.False(t, updated.IsOpen)

	past := e.clock.Now().Add(-time.Minute)
	_, err = e.uc.UpdateJob(ctx, e.employer, job.ID, domain.JobUpdate{ApplicationDeadline: &past})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))

	future := e.clock.Now().Add(24 * time.Hour)
	reopened, err := e.uc.UpdateJob(ctx, e.employer, job.ID, domain.JobUpdate{ApplicationDeadline: &future})
	require.NoError(t, err)
	assert.True(t, reopened.IsOpen)

	assert.Equal(t, []domain.ActivityKind{
		domain.ActivityJobCreated,
		domain.ActivityJobUpdated,
		domain.ActivityJobUpdated,
	}, e.activity.kinds())
}

func TestDeleteJob(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	job, err := e.uc.CreateJob(ctx, e.employer, e.input(time.Hour))
	require.NoError(t, err)

	require.NoError(t, e.uc.DeleteJob(ctx, e.employer, job.ID))
	_, err = e.uc.GetJob(ctx, e.employer, job.ID)
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
	assert.ErrorIs(t, e.uc.DeleteJob(ctx, e.employer, job.ID), domain.ErrJobNotFound)
}

type brokenJobs struct {
	repository.JobRepository
}

func (brokenJobs) List(context.Context, repository.JobFilter) ([]domain.Job, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func TestListPublicJobs_StorageUnavailable(t *testing.T) {
	uc := New(brokenJobs{}, nil, clockwork.NewFakeClock(), nil)

	_, err := uc.ListPublicJobs(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Equal(t, domain.ErrCodeStorageUnavailable, domain.CodeOf(err))
}
