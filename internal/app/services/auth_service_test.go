package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
	"github.com/yigit/campusportal/internal/pkg/auth"
)

func newAuthService(f *fixture) (AuthService, *auth.JWTService) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "campusportal-test",
	})
	return NewAuthService(f.store.Identity, f.store.Profiles, jwtService, f.log), jwtService
}

func TestAuthService_SignUpAndSignIn(t *testing.T) {
	f := newFixture(t)
	svc, jwtService := newAuthService(f)

	resp, err := svc.SignUp(f.ctx, &dto.SignUpRequest{Email: " Ada@Campus.edu ", Password: "secret1", FullName: "Ada Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, resp.User.Role)
	assert.True(t, resp.User.IsActive)
	assert.Equal(t, "ada@campus.edu", resp.User.Email)
	assert.Equal(t, "Bearer", resp.Token.TokenType)

	claims, err := jwtService.ValidateToken(resp.Token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	_, err = svc.SignUp(f.ctx, &dto.SignUpRequest{Email: "ada@campus.edu", Password: "secret2", FullName: "Ada Again"})
	requireAppError(t, err, apperrors.ErrConflict, "User already registered")

	signedIn, err := svc.SignIn(f.ctx, &dto.SignInRequest{Email: "ADA@campus.edu", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, signedIn.User.ID)

	_, err = svc.SignIn(f.ctx, &dto.SignInRequest{Email: "ada@campus.edu", Password: "wrong"})
	requireAppError(t, err, apperrors.ErrInvalidCredentials, "Invalid login credentials")
	_, err = svc.SignIn(f.ctx, &dto.SignInRequest{Email: "nobody@campus.edu", Password: "secret1"})
	requireAppError(t, err, apperrors.ErrInvalidCredentials, "Invalid login credentials")

	me, err := svc.Me(f.ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", me.FullName)
}

func TestAuthService_SignUpValidation(t *testing.T) {
	f := newFixture(t)
	svc, _ := newAuthService(f)

	tests := []struct {
		name string
		req  dto.SignUpRequest
		msg  string
	}{
		{name: "bad email", req: dto.SignUpRequest{Email: "ada", Password: "secret1", FullName: "Ada"}, msg: "Invalid email address"},
		{name: "short password", req: dto.SignUpRequest{Email: "ada@campus.edu", Password: "12345", FullName: "Ada"}, msg: "Password must be at least 6 characters"},
		{name: "no name", req: dto.SignUpRequest{Email: "ada@campus.edu", Password: "secret1", FullName: "  "}, msg: "Full name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignUp(f.ctx, &tt.req)
			requireAppError(t, err, apperrors.ErrValidationFailed, tt.msg)
		})
	}

	count, err := f.store.Profiles.Count(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAuthService_DisabledAccount(t *testing.T) {
	f := newFixture(t)
	svc, _ := newAuthService(f)

	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	id := uuid.NewString()
	require.NoError(t, f.store.Identity.CreateAccount(f.ctx,
		&models.AuthUser{ID: id, Email: "gone@campus.edu", PasswordHash: hash},
		&models.Profile{ID: id, Email: "gone@campus.edu", FullName: "Gone", Role: models.RoleTeacher, IsActive: false},
	))

	_, err = svc.SignIn(f.ctx, &dto.SignInRequest{Email: "gone@campus.edu", Password: "secret1"})
	requireAppError(t, err, apperrors.ErrAccountDisabled, "Account is disabled")
}

func TestAuthService_CreateAccountRole(t *testing.T) {
	f := newFixture(t)
	svc, _ := newAuthService(f)

	admin, err := svc.CreateAccount(f.ctx, "root@campus.edu", "secret1", "Registrar", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	_, err = svc.CreateAccount(f.ctx, "x@campus.edu", "secret1", "X", models.Role("root"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
