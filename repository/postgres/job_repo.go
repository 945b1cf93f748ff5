package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/fastygo/jobboard/domain"
	"github.com/fastygo/jobboard/repository"
)

var jobColumns = []string{
	"j.id",
	"j.employer_id",
	"u.full_name",
	"j.title",
	"j.description",
	"j.location",
	"j.employment_type",
	"j.created_at",
	"j.application_deadline",
	"(SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id) AS application_count",
}

type jobRepository struct {
	db DB
}

// NewJobRepository returns a Postgres-backed implementation of JobRepository.
func NewJobRepository(db DB) repository.JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) selectJobs() squirrel.SelectBuilder {
	return psql.Select(jobColumns...).
		From("jobs j").
		Join("users u ON u.id = j.employer_id")
}

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	if job == nil {
		return nil, domain.ErrInvalidPayload
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	const query = `
	WITH inserted AS (
		INSERT INTO jobs (id, employer_id, title, description, location, employment_type, application_deadline)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING employer_id, created_at
	)
	SELECT i.created_at, u.full_name
	FROM inserted i
	JOIN users u ON u.id = i.employer_id
	`

	if err := r.db.QueryRow(ctx, query,
		job.ID,
		job.EmployerID,
		job.Title,
		job.Description,
		job.Location,
		string(job.EmploymentType),
		job.ApplicationDeadline,
	).Scan(&job.CreatedAt, &job.EmployerName); err != nil {
		return nil, mapError(err, domain.ErrUserNotFound)
	}

	count := 0
	job.ApplicationCount = &count
	return job, nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	if !validID(id) {
		return nil, domain.ErrJobNotFound
	}
	query, args, err := r.selectJobs().Where(squirrel.Eq{"j.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanJob(r.db.QueryRow(ctx, query, args...))
}

func (r *jobRepository) List(ctx context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	builder := r.selectJobs().OrderBy("j.created_at DESC", "j.id")
	if filter.EmployerID != "" {
		if !validID(filter.EmployerID) {
			return []domain.Job{}, nil
		}
		builder = builder.Where(squirrel.Eq{"j.employer_id": filter.EmployerID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (r *jobRepository) Update(ctx context.Context, id string, update domain.JobUpdate) (*domain.Job, error) {
	if !validID(id) {
		return nil, domain.ErrJobNotFound
	}
	if update.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	builder := psql.Update("jobs").Where(squirrel.Eq{"id": id}).Suffix("RETURNING id")
	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
	}
	if update.Location != nil {
		builder = builder.Set("location", *update.Location)
	}
	if update.EmploymentType != nil {
		builder = builder.Set("employment_type", string(*update.EmploymentType))
	}
	if update.ApplicationDeadline != nil {
		builder = builder.Set("application_deadline", *update.ApplicationDeadline)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var updatedID string
	if err := r.db.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		return nil, mapError(err, domain.ErrJobNotFound)
	}
	return r.GetByID(ctx, updatedID)
}

// Delete relies on ON DELETE CASCADE so the job and its applications disappear
// in one statement.
func (r *jobRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrJobNotFound
	}
	const query = `DELETE FROM jobs WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return mapError(err, domain.ErrJobNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var (
		job            domain.Job
		employmentType string
		deadline       time.Time
		count          int
	)

	if err := row.Scan(
		&job.ID,
		&job.EmployerID,
		&job.EmployerName,
		&job.Title,
		&job.Description,
		&job.Location,
		&employmentType,
		&job.CreatedAt,
		&deadline,
		&count,
	); err != nil {
		return nil, mapError(err, domain.ErrJobNotFound)
	}

	job.EmploymentType = domain.EmploymentType(employmentType)
	job.ApplicationDeadline = deadline
	job.ApplicationCount = &count
	return &job, nil
}
