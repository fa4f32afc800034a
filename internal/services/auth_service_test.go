package services_test

import (
	"context"
	"errors"
	"testing"

	"carspace/config"
	"carspace/internal/domain"
	"carspace/internal/services"
	carspace_errors "carspace/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (*services.AuthService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiryMin: 60}
	return services.NewAuthService(repo, cfg), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, services.RegisterInput{
		Email:       "Buyer@Example.com",
		Password:    "correct-horse",
		DisplayName: "Buyer",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, domain.RoleUser, resp.User.Role)
	assert.Equal(t, "buyer@example.com", resp.User.Email)

	login, err := svc.Login(ctx, services.LoginInput{
		Email:    "buyer@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	claims, err := svc.ParseAccessToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, services.RegisterInput{
		Email:       "buyer@example.com",
		Password:    "correct-horse",
		DisplayName: "Buyer",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, services.RegisterInput{
		Email:       "buyer@example.com",
		Password:    "another-pass",
		DisplayName: "Imposter",
	})
	assert.True(t, errors.Is(err, carspace_errors.ErrAlreadyExists))
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, services.RegisterInput{
		Email:       "buyer@example.com",
		Password:    "correct-horse",
		DisplayName: "Buyer",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, services.LoginInput{
		Email:    "buyer@example.com",
		Password: "wrong-horse",
	})
	assert.True(t, errors.Is(err, carspace_errors.ErrUnauthorized))

	_, err = svc.Login(ctx, services.LoginInput{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})
	assert.True(t, errors.Is(err, carspace_errors.ErrUnauthorized))
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.ParseAccessToken("")
	assert.True(t, errors.Is(err, carspace_errors.ErrUnauthorized))

	_, err = svc.ParseAccessToken("not.a.token")
	assert.Error(t, err)
}
