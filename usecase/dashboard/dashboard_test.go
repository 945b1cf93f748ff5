package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/jobboard/domain"
	"github.com/fastygo/jobboard/repository/memory"
	appuc "github.com/fastygo/jobboard/usecase/application"
	jobuc "github.com/fastygo/jobboard/usecase/job"
)

type activitySink struct {
	store *memory.Store
}

func (s activitySink) Record(ctx context.Context, activity domain.Activity) error {
	return s.store.Activity().Append(ctx, activity)
}

func TestEmployerDashboard(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC))
	store := memory.New(clock)
	sink := activitySink{store: store}

	mk := func(email string, role domain.Role) *domain.Principal {
		user, err := store.Users().Create(ctx, &domain.User{Email: email, FullName: email, Role: role, Active: true})
		require.NoError(t, err)
		return user.Principal()
	}
	employer := mk("e@acme.io", domain.RoleEmployer)
	rival := mk("e@rival.io", domain.RoleEmployer)
	s1 := mk("s1@mail.io", domain.RoleSeeker)
	s2 := mk("s2@mail.io", domain.RoleSeeker)

	jobs := jobuc.New(store.Jobs(), sink, clock, nil)
	apps := appuc.New(store.Jobs(), store.Applications(), sink, clock, nil)
	uc := New(store.Dashboard(), store.Activity(), nil)

	input := domain.JobInput{
		Title:               "Analyst",
		Description:         "numbers",
		Location:            "Oslo",
		EmploymentType:      domain.EmploymentPartTime,
		ApplicationDeadline: clock.Now().Add(48 * time.Hour),
	}
	j1, err := jobs.CreateJob(ctx, employer, input)
	require.NoError(t, err)
	j2, err := jobs.CreateJob(ctx, employer, input)
	require.NoError(t, err)
	foreign, err := jobs.CreateJob(ctx, rival, input)
	require.NoError(t, err)

	a1, err := apps.Apply(ctx, s1, j1.ID, "cv1")
	require.NoError(t, err)
	a2, err := apps.Apply(ctx, s2, j1.ID, "cv2")
	require.NoError(t, err)
	_, err = apps.Apply(ctx, s1, j2.ID, "cv1")
	require.NoError(t, err)
	_, err = apps.Apply(ctx, s2, foreign.ID, "cv2")
	require.NoError(t, err)

	_, err = apps.UpdateStatus(ctx, employer, a1.ID, "ACCEPTED")
	require.NoError(t, err)
	_, err = apps.UpdateStatus(ctx, employer, a2.ID, "REJECTED")
	require.NoError(t, err)

	stats, err := uc.EmployerDashboard(ctx, employer)
	require.NoError(t, err)
	assert.Equal(t, domain.EmployerDashboard{Jobs: 2, Applications: 3, Accepted: 1, Rejected: 1}, *stats)

	rivalStats, err := uc.EmployerDashboard(ctx, rival)
	require.NoError(t, err)
	assert.Equal(t, domain.EmployerDashboard{Jobs: 1, Applications: 1}, *rivalStats)

	_, err = uc.EmployerDashboard(ctx, s1)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.EmployerDashboard(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	feed, err := uc.RecentActivity(ctx, employer, 0)
	require.NoError(t, err)
	// two jobs, three applications, two status changes
	assert.Len(t, feed, 7)
	for _, item := range feed {
		assert.Equal(t, employer.ID, item.EmployerID)
	}
}

type failingStats struct{}

func (failingStats) EmployerSnapshot(context.Context, string) (*domain.EmployerDashboard, error) {
	return nil, errors.New("connection reset by peer")
}

func TestEmployerDashboard_StorageUnavailable(t *testing.T) {
	uc := New(failingStats{}, nil, nil)
	principal := &domain.Principal{ID: "e1", Role: domain.RoleEmployer, Active: true}

	_, err := uc.EmployerDashboard(context.Background(), principal)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	feed, err := uc.RecentActivity(context.Background(), principal, 10)
	require.NoError(t, err)
	assert.Empty(t, feed)
}
