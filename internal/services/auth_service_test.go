package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "task-manager.com/task-manager/internal/errors"
)

const strongPassword = "Sup3rSecret"

func signUp(t *testing.T, f *fixture, email string) string {
	t.Helper()

	user, err := f.auth.SignUp(context.Background(), SignUpInput{
		Name:     "Amira",
		Email:    email,
		Password: strongPassword,
		TimeZone: "Europe/Paris",
	})
	require.NoError(t, err)
	return user.ID
}

func TestAuthService_SignUpNormalisesEmailAndStoresPreferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.SignUp(ctx, SignUpInput{
		Name:     "  Amira ",
		Email:    " Amira@Example.COM ",
		Password: strongPassword,
		TimeZone: "Mars/Olympus",
	})
	require.NoError(t, err)
	assert.Equal(t, "amira@example.com", user.Email)
	assert.Equal(t, "Amira", user.Name)
	assert.NotEqual(t, strongPassword, user.PasswordHash)

	prefs, err := f.prefs.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Africa/Tunis", prefs.TimeZone)
}

func TestAuthService_SignUpValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   SignUpInput
		want error
	}{
		{"short name", SignUpInput{Name: "A", Email: "a@b.io", Password: strongPassword}, apperrors.ErrInvalidName},
		{"bad email", SignUpInput{Name: "Amira", Email: "not-an-email", Password: strongPassword}, apperrors.ErrInvalidEmail},
		{"short password", SignUpInput{Name: "Amira", Email: "a@b.io", Password: "Ab1"}, apperrors.ErrWeakPassword},
		{"no digit", SignUpInput{Name: "Amira", Email: "a@b.io", Password: "Abcdefghij"}, apperrors.ErrWeakPassword},
		{"no upper", SignUpInput{Name: "Amira", Email: "a@b.io", Password: "abcdefgh1"}, apperrors.ErrWeakPassword},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.auth.SignUp(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAuthService_SignUpRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	signUp(t, f, "amira@example.com")

	_, err := f.auth.SignUp(context.Background(), SignUpInput{
		Name: "Other", Email: "AMIRA@example.com", Password: strongPassword,
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
}

func TestAuthService_SignInAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := signUp(t, f, "amira@example.com")

	session, err := f.auth.SignIn(ctx, "AMIRA@example.com", strongPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, userID, session.User.ID)

	claims, err := f.auth.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.NotEmpty(t, claims.TokenID)
}

func TestAuthService_SignInRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	signUp(t, f, "amira@example.com")

	_, err := f.auth.SignIn(ctx, "amira@example.com", "Wr0ngPassword")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.auth.SignIn(ctx, "nobody@example.com", strongPassword)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_AuthenticateRejectsTamperedAndExpiredTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	signUp(t, f, "amira@example.com")

	session, err := f.auth.SignIn(ctx, "amira@example.com", strongPassword)
	require.NoError(t, err)

	_, err = f.auth.Authenticate(ctx, session.Token+"x")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = f.auth.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	f.auth.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = f.auth.Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_SignOutRevokesToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	signUp(t, f, "amira@example.com")

	session, err := f.auth.SignIn(ctx, "amira@example.com", strongPassword)
	require.NoError(t, err)
	claims, err := f.auth.Authenticate(ctx, session.Token)
	require.NoError(t, err)

	require.NoError(t, f.auth.SignOut(ctx, claims))

	_, err = f.auth.Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := signUp(t, f, "amira@example.com")

	err := f.auth.ChangePassword(ctx, userID, "Wr0ngPassword", "N3wPassword")
	assert.ErrorIs(t, err, apperrors.ErrIncorrectPassword)

	err = f.auth.ChangePassword(ctx, userID, strongPassword, "weak")
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)

	require.NoError(t, f.auth.ChangePassword(ctx, userID, strongPassword, "N3wPassword"))

	_, err = f.auth.SignIn(ctx, "amira@example.com", strongPassword)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = f.auth.SignIn(ctx, "amira@example.com", "N3wPassword")
	assert.NoError(t, err)
}

func TestAuthService_ChangeEmailSignsOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	signUp(t, f, "amira@example.com")
	signUp(t, f, "taken@example.com")

	session, err := f.auth.SignIn(ctx, "amira@example.com", strongPassword)
	require.NoError(t, err)
	claims, err := f.auth.Authenticate(ctx, session.Token)
	require.NoError(t, err)

	err = f.auth.ChangeEmail(ctx, claims, strongPassword, "taken@example.com")
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)

	require.NoError(t, f.auth.ChangeEmail(ctx, claims, strongPassword, "New@Example.com"))

	_, err = f.auth.Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = f.auth.SignIn(ctx, "new@example.com", strongPassword)
	assert.NoError(t, err)
}

func TestAuthService_PasswordReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	signUp(t, f, "amira@example.com")

	token, err := f.auth.RequestPasswordReset(ctx, "unknown@example.com")
	require.NoError(t, err)
	assert.Empty(t, token)

	token, err = f.auth.RequestPasswordReset(ctx, "amira@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, f.auth.ResetPassword(ctx, token, "R3setPassword"))

	err = f.auth.ResetPassword(ctx, token, "An0therPassword")
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)

	_, err = f.auth.SignIn(ctx, "amira@example.com", "R3setPassword")
	assert.NoError(t, err)
}
