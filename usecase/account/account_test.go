package account

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fastygo/jobboard/domain"
	"github.com/fastygo/jobboard/repository/memory"
)

// Token expiry is validated against wall time by the jwt library, so the fake
// clock starts at the real current instant.
func newUseCase(t *testing.T) (*UseCase, *memory.Store, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Now())
	store := memory.New(clock)
	tokens := NewTokenIssuer("test-secret", "jobboard-test", time.Hour, clock)
	uc := New(store.Users(), store.Sessions(), tokens, clock, Options{
		SessionTTL: 2 * time.Hour,
		BcryptCost: bcrypt.MinCost,
	}, nil)
	return uc, store, clock
}

func register(t *testing.T, uc *UseCase, email, role string) *Result {
	t.Helper()
	res, err := uc.Register(context.Background(), RegisterInput{
		Email:    email,
		FullName: "Jane Doe",
		Role:     role,
		Password: "correct horse",
	})
	require.NoError(t, err)
	return res
}

func TestRegister(t *testing.T) {
	uc, _, _ := newUseCase(t)
	ctx := context.Background()

	res := register(t, uc, "  Jane@Example.COM ", "employer")
	require.NotNil(t, res.User)
	assert.Equal(t, "jane@example.com", res.User.Email)
	assert.Equal(t, domain.RoleEmployer, res.User.Role)
	assert.NotEqual(t, "correct horse", res.User.PasswordHash)
	assert.NotEmpty(t, res.Token)

	_, err := uc.Register(ctx, RegisterInput{Email: "JANE@example.com", FullName: "Other", Role: "SEEKER", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegister_Validation(t *testing.T) {
	uc, _, _ := newUseCase(t)

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{name: "bad email", input: RegisterInput{Email: "nope", FullName: "A", Role: "SEEKER", Password: "password1"}},
		{name: "bad role", input: RegisterInput{Email: "a@b.c", FullName: "A", Role: "ADMIN", Password: "password1"}},
		{name: "missing name", input: RegisterInput{Email: "a@b.c", FullName: " ", Role: "SEEKER", Password: "password1"}},
		{name: "short password", input: RegisterInput{Email: "a@b.c", FullName: "A", Role: "SEEKER", Password: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Register(context.Background(), tt.input)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeValidation), "got %v", err)
		})
	}
}

func TestLogin(t *testing.T) {
	uc, _, _ := newUseCase(t)
	ctx := context.Background()
	register(t, uc, "seeker@example.com", "SEEKER")

	res, err := uc.Login(ctx, LoginInput{Email: "Seeker@Example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = uc.Login(ctx, LoginInput{Email: "seeker@example.com", Password: "wrong horse"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "correct horse"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, LoginInput{Email: "seeker@example.com", Password: "correct horse", ExpectedRole: "EMPLOYER"})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeForbidden, domain.CodeOf(err))
	assert.Contains(t, err.Error(), "employers only")
}

func TestLogin_InactiveAccount(t *testing.T) {
	uc, store, _ := newUseCase(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = store.Users().Create(context.Background(), &domain.User{
		Email: "off@example.com", FullName: "Off", Role: domain.RoleSeeker, PasswordHash: string(hash),
	})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), LoginInput{Email: "off@example.com", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticate_RefreshAndLogout(t *testing.T) {
	uc, _, _ := newUseCase(t)
	ctx := context.Background()
	res := register(t, uc, "boss@example.com", "EMPLOYER")

	principal, err := uc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, principal.ID)
	assert.Equal(t, domain.RoleEmployer, principal.Role)
	assert.True(t, principal.Active)

	refreshed, err := uc.Refresh(ctx, res.Token)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Token)
	assert.Nil(t, refreshed.User)

	me, err := uc.Me(ctx, principal)
	require.NoError(t, err)
	assert.Equal(t, "boss@example.com", me.Email)

	require.NoError(t, uc.Logout(ctx, refreshed.Token))
	_, err = uc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = uc.Authenticate(ctx, refreshed.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthenticate_RejectsForeignTokens(t *testing.T) {
	uc, _, clock := newUseCase(t)
	ctx := context.Background()
	register(t, uc, "a@example.com", "SEEKER")

	_, err := uc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = uc.Authenticate(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	forged := NewTokenIssuer("other-secret", "jobboard-test", time.Hour, clock)
	token, _, err := forged.Issue(&domain.Session{ID: "sid", UserID: "u"})
	require.NoError(t, err)
	_, err = uc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	wrongIssuer := NewTokenIssuer("test-secret", "someone-else", time.Hour, clock)
	token, _, err = wrongIssuer.Issue(&domain.Session{ID: "sid", UserID: "u"})
	require.NoError(t, err)
	_, err = uc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestTokenIssuer_ExpiryCappedBySession(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Now())
	issuer := NewTokenIssuer("secret", "iss", time.Hour, clock)
	sessionEnd := clock.Now().Add(10 * time.Minute)

	token, expiresAt, err := issuer.Issue(&domain.Session{ID: "sid", UserID: "u", Role: domain.RoleSeeker, ExpiresAt: sessionEnd})
	require.NoError(t, err)
	assert.Equal(t, sessionEnd, expiresAt)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "sid", claims.SessionID)
	assert.Equal(t, "SEEKER", claims.Role)
	assert.Equal(t, "u", claims.Subject)
}
