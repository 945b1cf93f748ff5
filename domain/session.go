package domain

import "time"

// Session represents an authentication session stored in Redis. It carries a
// snapshot of the principal so token verification needs no database lookup.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) IsExpired(reference time.Time) bool {
	if s == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !s.ExpiresAt.After(reference)
}

// Principal returns the identity the session authenticates.
func (s *Session) Principal() *Principal {
	if s == nil {
		return nil
	}
	return &Principal{
		ID:     s.UserID,
		Email:  s.Email,
		Role:   s.Role,
		Active: true,
	}
}
