package account

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fastygo/jobboard/domain"
	"github.com/fastygo/jobboard/repository"
	"github.com/fastygo/jobboard/usecase/authz"
)

const (
	MinPasswordLength = 8
	// bcrypt ignores input past 72 bytes.
	MaxPasswordBytes = 72
)

type Options struct {
	SessionTTL time.Duration
	BcryptCost int
}

type RegisterInput struct {
	Email    string
	FullName string
	Role     string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
	// ExpectedRole, when set, restricts the login to accounts of that role.
	ExpectedRole string
}

// Result is returned by every operation that issues a token.
type Result struct {
	User      *domain.User `json:"user,omitempty"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	tokens   *TokenIssuer
	clock    clockwork.Clock
	opts     Options
	logger   *zap.Logger
}

func New(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	tokens *TokenIssuer,
	clock clockwork.Clock,
	opts Options,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		clock:    clock,
		opts:     opts,
		logger:   logger,
	}
}

// Register creates an account and signs it in. The role is fixed for the
// lifetime of the account.
func (uc *UseCase) Register(ctx context.Context, input RegisterInput) (*Result, error) {
	email := domain.NormalizeEmail(input.Email)
	if !strings.Contains(email, "@") {
		return nil, domain.Validation("email", "must be a valid address")
	}
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, domain.Validation("full_name", "is required")
	}
	if utf8.RuneCountInString(fullName) > 255 {
		return nil, domain.Validation("full_name", "is too long")
	}
	if len(input.Password) < MinPasswordLength {
		return nil, domain.Validation("password", "must be at least 8 characters")
	}
	if len(input.Password) > MaxPasswordBytes {
		return nil, domain.Validation("password", "is too long")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), uc.opts.BcryptCost)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "failed to hash password", err)
	}

	user, err := uc.users.Create(ctx, &domain.User{
		Email:        email,
		FullName:     fullName,
		Role:         role,
		Active:       true,
		PasswordHash: string(hash),
	})
	if err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeConflict) {
			uc.logger.Error("failed to create user", zap.Error(err))
		}
		return nil, domain.StorageError(err)
	}

	uc.logger.Info("account registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return uc.startSession(ctx, user)
}

// Login verifies credentials. A mismatching ExpectedRole yields Forbidden so
// an employer portal can refuse seekers with a specific message.
func (uc *UseCase) Login(ctx context.Context, input LoginInput) (*Result, error) {
	user, err := uc.users.GetByEmail(ctx, domain.NormalizeEmail(input.Email))
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.StorageError(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		uc.logger.Debug("password mismatch", zap.String("user_id", user.ID))
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, domain.ErrInvalidCredentials
	}
	if input.ExpectedRole != "" {
		expected, err := domain.ParseRole(input.ExpectedRole)
		if err != nil {
			return nil, err
		}
		if user.Role != expected {
			return nil, domain.NewError(domain.ErrCodeForbidden,
				"this login is for "+strings.ToLower(string(expected))+"s only")
		}
	}
	return uc.startSession(ctx, user)
}

// Authenticate resolves a bearer token into the principal of its live session.
func (uc *UseCase) Authenticate(ctx context.Context, token string) (*domain.Principal, error) {
	session, err := uc.session(ctx, token)
	if err != nil {
		return nil, err
	}
	return session.Principal(), nil
}

// Refresh extends the session behind a still-valid token and issues a new token.
func (uc *UseCase) Refresh(ctx context.Context, token string) (*Result, error) {
	session, err := uc.session(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := uc.sessions.Extend(ctx, session.ID, uc.opts.SessionTTL); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, domain.StorageError(err)
	}
	session.ExpiresAt = uc.clock.Now().Add(uc.opts.SessionTTL)
	return uc.issue(session, nil)
}

// Logout revokes the session; tokens referencing it stop working at once.
func (uc *UseCase) Logout(ctx context.Context, token string) error {
	claims, err := uc.tokens.Parse(token)
	if err != nil {
		return domain.ErrUnauthenticated
	}
	return domain.StorageError(uc.sessions.Delete(ctx, claims.SessionID))
}

// Me returns the account behind the principal.
func (uc *UseCase) Me(ctx context.Context, principal *domain.Principal) (*domain.User, error) {
	if err := authz.Authenticated(principal); err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, principal.ID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	return user, nil
}

func (uc *UseCase) session(ctx context.Context, token string) (*domain.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	claims, err := uc.tokens.Parse(token)
	if err != nil {
		uc.logger.Debug("token rejected", zap.Error(err))
		return nil, domain.ErrUnauthenticated
	}
	session, err := uc.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, domain.StorageError(err)
	}
	return session, nil
}

func (uc *UseCase) startSession(ctx context.Context, user *domain.User) (*Result, error) {
	now := uc.clock.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.opts.SessionTTL),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		uc.logger.Error("failed to save session", zap.String("user_id", user.ID), zap.Error(err))
		return nil, domain.StorageError(err)
	}
	return uc.issue(session, user)
}

func (uc *UseCase) issue(session *domain.Session, user *domain.User) (*Result, error) {
	token, expiresAt, err := uc.tokens.Issue(session)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "failed to issue token", err)
	}
	return &Result{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
