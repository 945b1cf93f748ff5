package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/jobboard/domain"
	"github.com/fastygo/jobboard/repository"
)

type fixture struct {
	store    *Store
	clock    *clockwork.FakeClock
	employer *domain.User
	seeker   *domain.User
	job      *domain.Job
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC))
	store := New(clock)

	employer, err := store.Users().Create(ctx, &domain.User{Email: "Boss@Acme.io", FullName: "Acme", Role: domain.RoleEmployer, Active: true})
	require.NoError(t, err)
	seeker, err := store.Users().Create(ctx, &domain.User{Email: "ann@mail.io", FullName: "Ann", Role: domain.RoleSeeker, Active: true})
	require.NoError(t, err)
	job, err := store.Jobs().Create(ctx, &domain.Job{
		EmployerID:          employer.ID,
		Title:               "Go Engineer",
		Description:         "backend",
		Location:            "Remote",
		EmploymentType:      domain.EmploymentFullTime,
		ApplicationDeadline: clock.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)

	return &fixture{store: store, clock: clock, employer: employer, seeker: seeker, job: job}
}

func TestUsers_EmailIsUniqueCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.Users().Create(ctx, &domain.User{Email: " boss@acme.IO ", Role: domain.RoleSeeker})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	found, err := f.store.Users().GetByEmail(ctx, "BOSS@acme.io")
	require.NoError(t, err)
	assert.Equal(t, f.employer.ID, found.ID)
	assert.Equal(t, "boss@acme.io", found.Email)
}

func TestJobs_CreateEnrichesEmployerAndCount(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "Acme", f.job.EmployerName)
	require.NotNil(t, f.job.ApplicationCount)
	assert.Equal(t, 0, *f.job.ApplicationCount)
	assert.Equal(t, f.clock.Now(), f.job.CreatedAt)
}

func TestJobs_CreateUnknownEmployer(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.Jobs().Create(context.Background(), &domain.Job{EmployerID: "missing"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestJobs_ListNewestFirstAndFiltered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other, err := f.store.Users().Create(ctx, &domain.User{Email: "other@corp.io", Role: domain.RoleEmployer, Active: true})
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	newer, err := f.store.Jobs().Create(ctx, &domain.Job{EmployerID: other.ID, Title: "SRE"})
	require.NoError(t, err)

	all, err := f.store.Jobs().List(ctx, repository.JobFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)
	assert.Equal(t, f.job.ID, all[1].ID)

	mine, err := f.store.Jobs().List(ctx, repository.JobFilter{EmployerID: f.employer.ID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, f.job.ID, mine[0].ID)
}

func TestJobs_UpdateAppliesOnlySuppliedFields(t *testing.T) {
	f := newFixture(t)
	title := "Senior Go Engineer"

	updated, err := f.store.Jobs().Update(context.Background(), f.job.ID, domain.JobUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, f.job.Location, updated.Location)
	assert.Equal(t, f.job.ApplicationDeadline, updated.ApplicationDeadline)

	_, err = f.store.Jobs().Update(context.Background(), "missing", domain.JobUpdate{Title: &title})
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestApplications_DuplicatePairRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.store.Applications().Create(ctx, &domain.Application{JobID: f.job.ID, SeekerID: f.seeker.ID, ResumeReference: "cv.pdf"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNew, app.Status)
	assert.Equal(t, "Go Engineer", app.JobTitle)
	assert.Equal(t, f.employer.ID, app.EmployerID)
	assert.Equal(t, "ann@mail.io", app.SeekerEmail)

	_, err = f.store.Applications().Create(ctx, &domain.Application{JobID: f.job.ID, SeekerID: f.seeker.ID, ResumeReference: "cv2.pdf"})
	assert.ErrorIs(t, err, domain.ErrDuplicateApplication)
}

func TestApplications_ConcurrentApplyYieldsSingleRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const attempts = 16
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		duplicates int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.store.Applications().Create(ctx, &domain.Application{JobID: f.job.ID, SeekerID: f.seeker.ID, ResumeReference: "cv.pdf"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if assert.ErrorIs(t, err, domain.ErrDuplicateApplication) {
				duplicates++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, duplicates)

	listing, err := f.store.Applications().ListByJob(ctx, f.job.ID)
	require.NoError(t, err)
	assert.Len(t, listing.Applications, 1)
}

func TestApplications_CreateForMissingJob(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.Applications().Create(context.Background(), &domain.Application{JobID: "missing", SeekerID: f.seeker.ID})
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestJobs_DeleteCascadesApplications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.store.Applications().Create(ctx, &domain.Application{JobID: f.job.ID, SeekerID: f.seeker.ID, ResumeReference: "cv.pdf"})
	require.NoError(t, err)

	require.NoError(t, f.store.Jobs().Delete(ctx, f.job.ID))

	_, err = f.store.Applications().GetByID(ctx, app.ID)
	assert.ErrorIs(t, err, domain.ErrApplicationNotFound)
	_, err = f.store.Applications().ListByJob(ctx, f.job.ID)
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
	assert.ErrorIs(t, f.store.Jobs().Delete(ctx, f.job.ID), domain.ErrJobNotFound)

	mine, err := f.store.Applications().ListBySeeker(ctx, f.seeker.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	stats, err := f.store.Dashboard().EmployerSnapshot(ctx, f.employer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EmployerDashboard{}, *stats)
}

func TestDashboard_CountsOwnedJobsOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	second, err := f.store.Jobs().Create(ctx, &domain.Job{EmployerID: f.employer.ID, Title: "QA"})
	require.NoError(t, err)
	other, err := f.store.Users().Create(ctx, &domain.User{Email: "bob@mail.io", Role: domain.RoleSeeker, Active: true})
	require.NoError(t, err)

	a1, err := f.store.Applications().Create(ctx, &domain.Application{JobID: f.job.ID, SeekerID: f.seeker.ID})
	require.NoError(t, err)
	a2, err := f.store.Applications().Create(ctx, &domain.Application{JobID: second.ID, SeekerID: f.seeker.ID})
	require.NoError(t, err)
	_, err = f.store.Applications().Create(ctx, &domain.Application{JobID: second.ID, SeekerID: other.ID})
	require.NoError(t, err)

	_, err = f.store.Applications().UpdateStatus(ctx, a1.ID, domain.StatusAccepted)
	require.NoError(t, err)
	_, err = f.store.Applications().UpdateStatus(ctx, a2.ID, domain.StatusRejected)
	require.NoError(t, err)

	stats, err := f.store.Dashboard().EmployerSnapshot(ctx, f.employer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EmployerDashboard{Jobs: 2, Applications: 3, Accepted: 1, Rejected: 1}, *stats)

	empty, err := f.store.Dashboard().EmployerSnapshot(ctx, f.seeker.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EmployerDashboard{}, *empty)
}

func TestActivity_AppendIsIdempotentAndNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := f.store.Activity()

	first := domain.Activity{ID: "a1", Kind: domain.ActivityJobCreated, EmployerID: f.employer.ID, CreatedAt: f.clock.Now()}
	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, domain.Activity{ID: "a2", Kind: domain.ActivityJobUpdated, EmployerID: f.employer.ID, CreatedAt: f.clock.Now().Add(time.Second)}))
	require.NoError(t, repo.Append(ctx, domain.Activity{ID: "a3", Kind: domain.ActivityJobUpdated, EmployerID: "someone-else"}))

	items, err := repo.ListByEmployer(ctx, f.employer.ID, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a2", items[0].ID)
	assert.Equal(t, "a1", items[1].ID)

	assert.ErrorIs(t, repo.Append(ctx, domain.Activity{}), domain.ErrInvalidPayload)
}

func TestSessions_ExpireAndExtend(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := f.store.Sessions()

	session := &domain.Session{ID: "sid", UserID: f.seeker.ID, ExpiresAt: f.clock.Now().Add(time.Minute)}
	require.NoError(t, repo.Save(ctx, session))

	got, err := repo.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, f.seeker.ID, got.UserID)

	require.NoError(t, repo.Extend(ctx, "sid", time.Hour))
	f.clock.Advance(30 * time.Minute)
	_, err = repo.Get(ctx, "sid")
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	_, err = repo.Get(ctx, "sid")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	require.NoError(t, repo.Delete(ctx, "sid"))
	assert.ErrorIs(t, repo.Extend(ctx, "sid", time.Hour), domain.ErrSessionNotFound)
}
