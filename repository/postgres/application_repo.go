package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/jobboard/domain"
	"github.com/fastygo/jobboard/repository"
)

const applicationColumns = `
	a.id, a.job_id, j.title, j.employer_id, a.seeker_id, s.full_name, s.email,
	a.resume_reference, a.status, a.applied_at
`

type applicationRepository struct {
	db DB
}

// NewApplicationRepository returns a Postgres-backed implementation of ApplicationRepository.
func NewApplicationRepository(db DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create leans on the applications_job_seeker_key constraint: the insert either
// succeeds or reports the duplicate, with no separate existence check.
func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	if app == nil {
		return nil, domain.ErrInvalidPayload
	}
	if !validID(app.JobID) {
		return nil, domain.ErrJobNotFound
	}
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.Status == "" {
		app.Status = domain.StatusNew
	}

	const query = `
	WITH inserted AS (
		INSERT INTO applications (id, job_id, seeker_id, resume_reference, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING job_id, seeker_id, applied_at
	)
	SELECT i.applied_at, j.title, j.employer_id, s.full_name, s.email
	FROM inserted i
	JOIN jobs j ON j.id = i.job_id
	JOIN users s ON s.id = i.seeker_id
	`

	if err := r.db.QueryRow(ctx, query,
		app.ID,
		app.JobID,
		app.SeekerID,
		app.ResumeReference,
		string(app.Status),
	).Scan(&app.AppliedAt, &app.JobTitle, &app.EmployerID, &app.SeekerName, &app.SeekerEmail); err != nil {
		return nil, mapError(err, domain.ErrJobNotFound)
	}
	return app, nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	if !validID(id) {
		return nil, domain.ErrApplicationNotFound
	}
	const query = `
	SELECT ` + applicationColumns + `
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN users s ON s.id = a.seeker_id
	WHERE a.id = $1
	`
	return scanApplication(r.db.QueryRow(ctx, query, id))
}

func (r *applicationRepository) ListBySeeker(ctx context.Context, seekerID string) ([]domain.Application, error) {
	if !validID(seekerID) {
		return []domain.Application{}, nil
	}
	const query = `
	SELECT ` + applicationColumns + `
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN users s ON s.id = a.seeker_id
	WHERE a.seeker_id = $1
	ORDER BY a.applied_at DESC, a.id
	`
	rows, err := r.db.Query(ctx, query, seekerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// ListByJob reads the job row and its applications in one statement so a
// concurrent cascade delete is observed either completely or not at all.
func (r *applicationRepository) ListByJob(ctx context.Context, jobID string) (*domain.JobApplications, error) {
	if !validID(jobID) {
		return nil, domain.ErrJobNotFound
	}
	const query = `
	SELECT
		j.id, j.employer_id, e.full_name, j.title, j.description, j.location,
		j.employment_type, j.created_at, j.application_deadline,
		COALESCE(a.id::text, ''), COALESCE(a.seeker_id::text, ''),
		COALESCE(s.full_name, ''), COALESCE(s.email, ''),
		COALESCE(a.resume_reference, ''), COALESCE(a.status, ''),
		COALESCE(a.applied_at, j.created_at)
	FROM jobs j
	JOIN users e ON e.id = j.employer_id
	LEFT JOIN applications a ON a.job_id = j.id
	LEFT JOIN users s ON s.id = a.seeker_id
	WHERE j.id = $1
	ORDER BY a.applied_at DESC NULLS LAST, a.id
	`
	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, mapError(err, domain.ErrJobNotFound)
	}
	defer rows.Close()

	var result *domain.JobApplications
	for rows.Next() {
		var (
			job            domain.Job
			employmentType string
			app            domain.Application
			status         string
		)
		if err := rows.Scan(
			&job.ID, &job.EmployerID, &job.EmployerName, &job.Title, &job.Description, &job.Location,
			&employmentType, &job.CreatedAt, &job.ApplicationDeadline,
			&app.ID, &app.SeekerID,
			&app.SeekerName, &app.SeekerEmail,
			&app.ResumeReference, &status,
			&app.AppliedAt,
		); err != nil {
			return nil, err
		}
		if result == nil {
			job.EmploymentType = domain.EmploymentType(employmentType)
			result = &domain.JobApplications{Job: job, Applications: []domain.Application{}}
		}
		if app.ID == "" {
			continue
		}
		app.JobID = job.ID
		app.JobTitle = job.Title
		app.EmployerID = job.EmployerID
		app.Status = domain.ApplicationStatus(status)
		result.Applications = append(result.Applications, app)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, domain.ErrJobNotFound
	}
	count := len(result.Applications)
	result.Job.ApplicationCount = &count
	return result, nil
}

// UpdateStatus touches only the status column; job_id, seeker_id and applied_at
// are never part of the statement.
func (r *applicationRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	if !validID(id) {
		return nil, domain.ErrApplicationNotFound
	}
	const query = `
	WITH updated AS (
		UPDATE applications SET status = $2
		WHERE id = $1
		RETURNING id, job_id, seeker_id, resume_reference, status, applied_at
	)
	SELECT ` + applicationColumns + `
	FROM updated a
	JOIN jobs j ON j.id = a.job_id
	JOIN users s ON s.id = a.seeker_id
	`
	return scanApplication(r.db.QueryRow(ctx, query, id, string(status)))
}

func scanApplication(row rowScanner) (*domain.Application, error) {
	var (
		app       domain.Application
		status    string
		appliedAt time.Time
	)
	if err := row.Scan(
		&app.ID,
		&app.JobID,
		&app.JobTitle,
		&app.EmployerID,
		&app.SeekerID,
		&app.SeekerName,
		&app.SeekerEmail,
		&app.ResumeReference,
		&status,
		&appliedAt,
	); err != nil {
		return nil, mapError(err, domain.ErrApplicationNotFound)
	}
	app.Status = domain.ApplicationStatus(status)
	app.AppliedAt = appliedAt
	return &app, nil
}
