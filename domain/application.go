package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// ApplicationStatus is the employer-controlled triage state of an application.
// Every status may be set from every other status; there is no terminal state.
type ApplicationStatus string

const (
	StatusNew       ApplicationStatus = "NEW"
	StatusReviewing ApplicationStatus = "REVIEWING"
	StatusAccepted  ApplicationStatus = "ACCEPTED"
	StatusRejected  ApplicationStatus = "REJECTED"

	MaxResumeReferenceLength = 500
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusNew, StatusReviewing, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

// ParseApplicationStatus normalizes casing and whitespace before checking membership.
func ParseApplicationStatus(value string) (ApplicationStatus, error) {
	status := ApplicationStatus(strings.ToUpper(strings.TrimSpace(value)))
	if !status.Valid() {
		return "", Validation("status", "must be one of NEW, REVIEWING, ACCEPTED, REJECTED")
	}
	return status, nil
}

// Application is a seeker's submission to a job. JobID, SeekerID and AppliedAt
// are fixed at creation. EmployerID is the owner of the referenced job, loaded
// alongside the application for object-level authorization.
type Application struct {
	ID              string            `json:"id"`
	JobID           string            `json:"job_id"`
	JobTitle        string            `json:"job_title,omitempty"`
	SeekerID        string            `json:"seeker_id"`
	SeekerName      string            `json:"seeker_name,omitempty"`
	SeekerEmail     string            `json:"seeker_email,omitempty"`
	ResumeReference string            `json:"resume_reference"`
	Status          ApplicationStatus `json:"status"`
	AppliedAt       time.Time         `json:"applied_at"`
	EmployerID      string            `json:"-"`
}

// ValidateResumeReference checks the opaque resume pointer a seeker submits.
func ValidateResumeReference(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return Validation("resume_reference", "is required")
	}
	if utf8.RuneCountInString(ref) > MaxResumeReferenceLength {
		return Validation("resume_reference", "is too long")
	}
	return nil
}

// JobApplications is a job together with its applications, read from a single snapshot.
type JobApplications struct {
	Job          Job           `json:"job"`
	Applications []Application `json:"applications"`
}
