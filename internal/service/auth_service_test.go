package service

import (
	"context"
	"testing"

	"github.com/Kitchen-Control/CentralKitchen/internal/apierror"
	"github.com/Kitchen-Control/CentralKitchen/internal/config"
	"github.com/Kitchen-Control/CentralKitchen/internal/dto"
	"github.com/Kitchen-Control/CentralKitchen/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (AuthService, *stubUserRepo) {
	repo := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "unit-test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repo, cfg), repo
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "chef", Password: "s3cret", FullName: "Head Chef", Role: model.RoleKitchen,
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "chef", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, model.RoleKitchen, resp.User.Role)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "chef", Password: "s3cret", FullName: "Head Chef", Role: model.RoleKitchen,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "chef", Password: "wrong"})
	assert.Error(t, err)
}

func TestLoginRejectsDeactivatedUser(t *testing.T) {
	svc, repo := newAuthFixture()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "driver", Password: "s3cret", FullName: "Driver", Role: model.RoleShipper,
	})
	require.NoError(t, err)

	id := uuid.MustParse(created.ID)
	require.NoError(t, svc.DeactivateUser(ctx, id))
	require.False(t, repo.users[id].Active)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "driver", Password: "s3cret"})
	assert.Error(t, err)
}

func TestRefreshReturnsFreshPair(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "planner", Password: "s3cret", FullName: "Planner", Role: model.RoleManager,
	})
	require.NoError(t, err)

	login, err := svc.Login(ctx, dto.LoginRequest{Username: "planner", Password: "s3cret"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "planner", refreshed.User.Username)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.Error(t, err)
}

func TestCreateStoreUserRequiresStore(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "branch", Password: "s3cret", FullName: "Branch User", Role: model.RoleStore,
	})
	assert.ErrorIs(t, err, apierror.ErrValidation)
}
