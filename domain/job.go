package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// EmploymentType enumerates the contract forms a job can be offered under.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "FULL_TIME"
	EmploymentPartTime   EmploymentType = "PART_TIME"
	EmploymentContract   EmploymentType = "CONTRACT"
	EmploymentInternship EmploymentType = "INTERNSHIP"
)

func (t EmploymentType) Valid() bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return true
	default:
		return false
	}
}

const (
	JobStatusOpen   = "Open"
	JobStatusClosed = "Closed"

	MaxTitleLength    = 255
	MaxLocationLength = 255
)

// Job is a posting owned by an employer. IsOpen and Status are derived on read
// from ApplicationDeadline and the current time; they are never persisted.
type Job struct {
	ID                  string         `json:"id"`
	EmployerID          string         `json:"employer_id"`
	EmployerName        string         `json:"employer_name,omitempty"`
	Title               string         `json:"title"`
	Description         string         `json:"description"`
	Location            string         `json:"location"`
	EmploymentType      EmploymentType `json:"employment_type"`
	CreatedAt           time.Time      `json:"created_at"`
	ApplicationDeadline time.Time      `json:"application_deadline"`
	ApplicationCount    *int           `json:"application_count,omitempty"`
	IsOpen              bool           `json:"is_open"`
	Status              string         `json:"status"`
}

// OpenAt reports whether the job accepts applications at the given instant.
// The deadline itself is still open.
func (j *Job) OpenAt(now time.Time) bool {
	return j != nil && !j.ApplicationDeadline.Before(now)
}

// Annotate refreshes the derived openness fields for the given instant.
func (j *Job) Annotate(now time.Time) {
	if j == nil {
		return
	}
	j.IsOpen = j.OpenAt(now)
	if j.IsOpen {
		j.Status = JobStatusOpen
	} else {
		j.Status = JobStatusClosed
	}
}

// JobInput carries the fields an employer supplies when posting a job.
type JobInput struct {
	Title               string
	Description         string
	Location            string
	EmploymentType      EmploymentType
	ApplicationDeadline time.Time
}

// Validate checks required fields and that the deadline lies strictly after now.
func (in JobInput) Validate(now time.Time) error {
	if err := validateTitle(in.Title); err != nil {
		return err
	}
	if strings.TrimSpace(in.Description) == "" {
		return Validation("description", "is required")
	}
	if err := validateLocation(in.Location); err != nil {
		return err
	}
	if !in.EmploymentType.Valid() {
		return Validation("employment_type", "must be one of FULL_TIME, PART_TIME, CONTRACT, INTERNSHIP")
	}
	return validateDeadline(in.ApplicationDeadline, now)
}

// JobUpdate is a partial update; nil fields are left untouched.
type JobUpdate struct {
	Title               *string
	Description         *string
	Location            *string
	EmploymentType      *EmploymentType
	ApplicationDeadline *time.Time
}

func (u JobUpdate) IsEmpty() bool {
	return u.Title == nil &&
		u.Description == nil &&
		u.Location == nil &&
		u.EmploymentType == nil &&
		u.ApplicationDeadline == nil
}

// Validate checks only the supplied fields. The deadline is re-validated against
// now only when it is part of the update.
func (u JobUpdate) Validate(now time.Time) error {
	if u.Title != nil {
		if err := validateTitle(*u.Title); err != nil {
			return err
		}
	}
	if u.Description != nil && strings.TrimSpace(*u.Description) == "" {
		return Validation("description", "is required")
	}
	if u.Location != nil {
		if err := validateLocation(*u.Location); err != nil {
			return err
		}
	}
	if u.EmploymentType != nil && !u.EmploymentType.Valid() {
		return Validation("employment_type", "must be one of FULL_TIME, PART_TIME, CONTRACT, INTERNSHIP")
	}
	if u.ApplicationDeadline != nil {
		return validateDeadline(*u.ApplicationDeadline, now)
	}
	return nil
}

// ApplyTo copies the supplied fields onto job. Ownership and creation time are never touched.
func (u JobUpdate) ApplyTo(job *Job) {
	if job == nil {
		return
	}
	if u.Title != nil {
		job.Title = *u.Title
	}
	if u.Description != nil {
		job.Description = *u.Description
	}
	if u.Location != nil {
		job.Location = *u.Location
	}
	if u.EmploymentType != nil {
		job.EmploymentType = *u.EmploymentType
	}
	if u.ApplicationDeadline != nil {
		job.ApplicationDeadline = *u.ApplicationDeadline
	}
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return Validation("title", "is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return Validation("title", "is too long")
	}
	return nil
}

func validateLocation(location string) error {
	if strings.TrimSpace(location) == "" {
		return Validation("location", "is required")
	}
	if utf8.RuneCountInString(location) > MaxLocationLength {
		return Validation("location", "is too long")
	}
	return nil
}

func validateDeadline(deadline, now time.Time) error {
	if deadline.IsZero() {
		return Validation("application_deadline", "is required")
	}
	if !deadline.After(now) {
		return Validation("application_deadline", "must be in the future")
	}
	return nil
}
