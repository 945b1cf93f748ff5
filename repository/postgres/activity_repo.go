package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/fastygo/jobboard/domain"
	"github.com/fastygo/jobboard/repository"
)

type activityRepository struct {
	db DB
}

// NewActivityRepository creates a Postgres-backed activity log.
func NewActivityRepository(db DB) repository.ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Append(ctx context.Context, activity domain.Activity) error {
	if activity.Kind == "" || activity.EmployerID == "" {
		return domain.ErrInvalidPayload
	}
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO activity_log (id, kind, actor_id, employer_id, job_id, application_id, metadata, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, NOW()))
	ON CONFLICT (id) DO NOTHING
	`
	var createdAt interface{}
	if !activity.CreatedAt.IsZero() {
		createdAt = activity.CreatedAt
	}

	_, err := r.db.Exec(ctx, query,
		activity.ID,
		string(activity.Kind),
		activity.ActorID,
		activity.EmployerID,
		nullString(activity.JobID),
		nullString(activity.ApplicationID),
		marshalMap(activity.Metadata),
		createdAt,
	)
	return err
}

func (r *activityRepository) ListByEmployer(ctx context.Context, employerID string, limit int) ([]domain.Activity, error) {
	if !validID(employerID) {
		return []domain.Activity{}, nil
	}
	const query = `
	SELECT id, kind, actor_id, employer_id, COALESCE(job_id::text, ''), COALESCE(application_id::text, ''),
		metadata, created_at
	FROM activity_log
	WHERE employer_id = $1
	ORDER BY created_at DESC
	LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, employerID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []domain.Activity{}
	for rows.Next() {
		var (
			activity domain.Activity
			kind     string
			metadata []byte
		)
		if err := rows.Scan(
			&activity.ID,
			&kind,
			&activity.ActorID,
			&activity.EmployerID,
			&activity.JobID,
			&activity.ApplicationID,
			&metadata,
			&activity.CreatedAt,
		); err != nil {
			return nil, err
		}
		activity.Kind = domain.ActivityKind(kind)
		if len(metadata) > 0 {
			_ = json.Unmarshal(metadata, &activity.Metadata)
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}
