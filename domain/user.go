package domain

import "time"

// User represents a registered account in the platform.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) IsActive() bool {
	return u != nil && u.Active
}

// Principal derives the authorization identity of the account.
func (u *User) Principal() *Principal {
	if u == nil {
		return nil
	}
	return &Principal{
		ID:     u.ID,
		Email:  u.Email,
		Role:   u.Role,
		Active: u.Active,
	}
}
