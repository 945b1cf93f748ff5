package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fastygo/jobboard/domain"
	"github.com/fastygo/jobboard/internal/app"
	"github.com/fastygo/jobboard/internal/config"
)

func seededStorage(t *testing.T) (*app.Storage, *domain.User, *domain.User) {
	t.Helper()

	ctx := context.Background()
	storage, err := app.OpenStorage(ctx, &config.Config{StorageDriver: config.StorageDriverMemory}, clockwork.NewRealClock(), nil)
	require.NoError(t, err)

	employer, err := storage.Users.Create(ctx, &domain.User{Email: "hr@acme.test", FullName: "Acme", Role: domain.RoleEmployer, Active: true})
	require.NoError(t, err)
	seeker, err := storage.Users.Create(ctx, &domain.User{Email: "dev@mail.test", Role: domain.RoleSeeker, Active: true})
	require.NoError(t, err)

	job, err := storage.Jobs.Create(ctx, &domain.Job{
		EmployerID:          employer.ID,
		Title:               "Backend engineer",
		Description:         "Go services",
		Location:            "Remote",
		EmploymentType:      domain.EmploymentFullTime,
		ApplicationDeadline: time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	_, err = storage.Jobs.Create(ctx, &domain.Job{
		EmployerID:          employer.ID,
		Title:               "Archived role",
		Description:         "Closed already",
		Location:            "Berlin",
		EmploymentType:      domain.EmploymentContract,
		ApplicationDeadline: time.Now().Add(-48 * time.Hour),
	})
	require.NoError(t, err)

	_, err = storage.Applications.Create(ctx, &domain.Application{
		JobID:           job.ID,
		SeekerID:        seeker.ID,
		ResumeReference: "s3://cv/dev.pdf",
		Status:          domain.StatusNew,
	})
	require.NoError(t, err)

	return storage, employer, seeker
}

func run(t *testing.T, storage *app.Storage, args ...string) (string, error) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("STORAGE_DRIVER", config.StorageDriverMemory)
	t.Setenv("LOG_LEVEL", "error")

	previous := openStorage
	openStorage = func(context.Context, *config.Config, *zap.Logger) (*app.Storage, error) {
		return storage, nil
	}
	t.Cleanup(func() { openStorage = previous })

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestJobsCommandListsStatus(t *testing.T) {
	storage, employer, _ := seededStorage(t)

	out, err := run(t, storage, "jobs", "--employer", employer.ID)
	require.NoError(t, err)

	assert.Contains(t, out, "Backend engineer")
	assert.Contains(t, out, "Archived role")
	assert.Contains(t, out, domain.JobStatusOpen)
	assert.Contains(t, out, domain.JobStatusClosed)
}

func TestDashboardCommand(t *testing.T) {
	storage, employer, _ := seededStorage(t)

	out, err := run(t, storage, "dashboard", "--employer", employer.ID)
	require.NoError(t, err)

	assert.Contains(t, out, "hr@acme.test")
	assert.Regexp(t, `Jobs:\s+2`, out)
	assert.Regexp(t, `Applications:\s+1`, out)
	assert.Regexp(t, `Accepted:\s+0`, out)
}

func TestDashboardCommandRejectsSeeker(t *testing.T) {
	storage, _, seeker := seededStorage(t)

	_, err := run(t, storage, "dashboard", "--employer", seeker.ID)
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeForbidden, domain.CodeOf(err))
}

func TestDashboardCommandRequiresEmployerFlag(t *testing.T) {
	storage, _, _ := seededStorage(t)

	_, err := run(t, storage, "dashboard")
	require.Error(t, err)
}
