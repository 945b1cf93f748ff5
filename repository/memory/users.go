package memory

import (
	"context"

	"github.com/fastygo/jobboard/domain"
)

type userRepository struct {
	s *Store
}

func (r *userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.emails[domain.NormalizeEmail(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user := r.s.users[id]
	return &user, nil
}

func (r *userRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrInvalidPayload
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user.Email = domain.NormalizeEmail(user.Email)
	if _, taken := r.s.emails[user.Email]; taken {
		return nil, domain.ErrEmailTaken
	}
	if user.ID == "" {
		user.ID = newID()
	}
	user.CreatedAt = r.s.now()
	r.s.users[user.ID] = *user
	r.s.emails[user.Email] = user.ID
	return user, nil
}
