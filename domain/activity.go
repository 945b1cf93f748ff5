package domain

import "time"

// ActivityKind names a lifecycle event recorded in the activity log.
type ActivityKind string

const (
	ActivityJobCreated         ActivityKind = "job.created"
	ActivityJobUpdated         ActivityKind = "job.updated"
	ActivityJobDeleted         ActivityKind = "job.deleted"
	ActivityApplicationCreated ActivityKind = "application.created"
	ActivityStatusChanged      ActivityKind = "application.status_changed"
)

// Activity is an append-only record of a committed mutation, scoped to the
// employer who owns the affected job.
type Activity struct {
	ID            string            `json:"id"`
	Kind          ActivityKind      `json:"kind"`
	ActorID       string            `json:"actor_id"`
	EmployerID    string            `json:"employer_id"`
	JobID         string            `json:"job_id,omitempty"`
	ApplicationID string            `json:"application_id,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}
