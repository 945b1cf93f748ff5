package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/fastygo/jobboard/domain"
	"github.com/fastygo/jobboard/repository"
)

const userColumns = `id, email, full_name, role, is_active, password_hash, created_at`

type userRepository struct {
	db DB
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(db DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if !validID(id) {
		return nil, domain.ErrUserNotFound
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, domain.NormalizeEmail(email)))
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrInvalidPayload
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Email = domain.NormalizeEmail(user.Email)

	const query = `
	INSERT INTO users (id, email, full_name, role, is_active, password_hash)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at
	`
	if err := r.db.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.FullName,
		string(user.Role),
		user.Active,
		user.PasswordHash,
	).Scan(&user.CreatedAt); err != nil {
		return nil, mapError(err, domain.ErrUserNotFound)
	}
	return user, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user domain.User
		role string
	)
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&role,
		&user.Active,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		return nil, mapError(err, domain.ErrUserNotFound)
	}
	user.Role = domain.Role(role)
	return &user, nil
}
