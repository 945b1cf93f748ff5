package domain

import "strings"

// Role is the closed set of identities an account can act as.
type Role string

const (
	RoleEmployer Role = "EMPLOYER"
	RoleSeeker   Role = "SEEKER"
)

func (r Role) Valid() bool {
	return r == RoleEmployer || r == RoleSeeker
}

// ParseRole accepts any casing and surrounding whitespace.
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(value)))
	if !role.Valid() {
		return "", Validation("role", "must be EMPLOYER or SEEKER")
	}
	return role, nil
}

// Principal is the authenticated identity every core operation is evaluated against.
type Principal struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Active bool   `json:"active"`
}

func (p *Principal) IsEmployer() bool {
	return p != nil && p.Role == RoleEmployer
}

func (p *Principal) IsSeeker() bool {
	return p != nil && p.Role == RoleSeeker
}

// NormalizeEmail lower-cases and trims an address so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
