package transport

import (
	"time"

	"github.com/fastygo/jobboard/domain"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	ExpectedRole string `json:"expected_role"`
}

type JobRequest struct {
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Location            string    `json:"location"`
	EmploymentType      string    `json:"employment_type"`
	ApplicationDeadline time.Time `json:"application_deadline"`
}

func (r JobRequest) Input() domain.JobInput {
	return domain.JobInput{
		Title:               r.Title,
		Description:         r.Description,
		Location:            r.Location,
		EmploymentType:      domain.EmploymentType(r.EmploymentType),
		ApplicationDeadline: r.ApplicationDeadline,
	}
}

// JobUpdateRequest is a partial update: absent fields stay untouched.
type JobUpdateRequest struct {
	Title               *string    `json:"title"`
	Description         *string    `json:"description"`
	Location            *string    `json:"location"`
	EmploymentType      *string    `json:"employment_type"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
}

func (r JobUpdateRequest) Update() domain.JobUpdate {
	update := domain.JobUpdate{
		Title:               r.Title,
		Description:         r.Description,
		Location:            r.Location,
		ApplicationDeadline: r.ApplicationDeadline,
	}
	if r.EmploymentType != nil {
		kind := domain.EmploymentType(*r.EmploymentType)
		update.EmploymentType = &kind
	}
	return update
}

type ApplyRequest struct {
	JobID           string `json:"job_id"`
	ResumeReference string `json:"resume_reference"`
}

// StatusRequest carries the new status. job_id and seeker_id are not part of
// it, so a client cannot move an application between jobs or seekers.
type StatusRequest struct {
	Status string `json:"status"`
}
