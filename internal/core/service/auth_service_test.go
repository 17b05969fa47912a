package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/content-system/internal/core/domain"
	"github.com/inkwell/content-system/internal/core/ports"
)

func newAuthSvc(admins ...string) (*AuthService, *stubUserRepo) {
	repo := newStubUserRepo()
	return NewAuthService(repo, "secret", time.Hour, admins, discardLogger), repo
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _ := newAuthSvc()

	user, err := svc.Register(context.Background(), ports.RegisterInput{Email: " Alice@Example.com ", Password: "pass123", Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.False(t, user.Public, "new profiles start private")
	assert.Empty(t, user.Handle)
	assert.NotEqual(t, "pass123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")))
}

func TestAuthService_Register_BootstrapAdmin(t *testing.T) {
	svc, _ := newAuthSvc("Owner@Example.com")

	user, err := svc.Register(context.Background(), ports.RegisterInput{Email: "owner@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newAuthSvc()

	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: "", Password: "pass"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Register(context.Background(), ports.RegisterInput{Email: "bob@example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _ := newAuthSvc()

	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: "bob@example.com", Password: "pass"})
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), ports.RegisterInput{Email: "BOB@example.com", Password: "pass2"})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _ := newAuthSvc()

	registered, err := svc.Register(context.Background(), ports.RegisterInput{Email: "carol@example.com", Password: "s3cret"})
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	assert.Equal(t, registered.ID, claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, _ := newAuthSvc()

	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: "dave@example.com", Password: "goodpass"})
	require.NoError(t, err)
	_, _, err = svc.Login(context.Background(), "dave@example.com", "badpass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc, _ := newAuthSvc()

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "pass")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
