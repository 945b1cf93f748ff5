// Package authz holds the authorization predicates shared by every use case.
// They are pure functions over the principal and already loaded records.
package authz

import (
	"github.com/fastygo/jobboard/domain"
)

// Require checks that the principal is present, active and holds the role.
func Require(principal *domain.Principal, role domain.Role) error {
	if err := Authenticated(principal); err != nil {
		return err
	}
	if principal.Role != role {
		return domain.ErrForbidden
	}
	return nil
}

// Authenticated rejects a missing or deactivated principal.
func Authenticated(principal *domain.Principal) error {
	if principal == nil || principal.ID == "" || !principal.Active {
		return domain.ErrUnauthenticated
	}
	return nil
}

// OwnsJob reports whether the principal is the employer who posted the job.
func OwnsJob(principal *domain.Principal, job *domain.Job) bool {
	return principal != nil && job != nil && principal.IsEmployer() && job.EmployerID == principal.ID
}

// OwnsApplicationViaJob reports whether the principal owns the job the
// application belongs to. EmployerID on the application is resolved by the
// repository from its job.
func OwnsApplicationViaJob(principal *domain.Principal, app *domain.Application) bool {
	return principal != nil && app != nil && principal.IsEmployer() && app.EmployerID != "" && app.EmployerID == principal.ID
}

// IsApplicant reports whether the application was submitted by the principal.
func IsApplicant(principal *domain.Principal, app *domain.Application) bool {
	return principal != nil && app != nil && principal.IsSeeker() && app.SeekerID == principal.ID
}
