package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/config"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/dto"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/model"
)

func buildAuthSvc() (AuthService, *stubUserRepo) {
	repo := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret-not-for-production",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repo, cfg), repo
}

func TestLogin(t *testing.T) {
	svc, _ := buildAuthSvc()

	created, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "marco",
		Password: "correct-horse-battery",
		FullName: "Marco Rossi",
		Role:     model.RoleStaff,
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "marco",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, model.RoleStaff, resp.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := buildAuthSvc()
	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "marco", Password: "correct-horse-battery", Role: model.RoleStaff,
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "marco", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown usernames fail with the same error to avoid enumeration.
	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, repo := buildAuthSvc()
	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "marco", Password: "correct-horse-battery", Role: model.RoleStaff,
	})
	require.NoError(t, err)

	for _, u := range repo.users {
		u.IsActive = false
	}

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Username: "marco", Password: "correct-horse-battery",
	})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestRefresh(t *testing.T) {
	svc, _ := buildAuthSvc()
	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "marco", Password: "correct-horse-battery", Role: model.RoleAdmin,
	})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "marco", Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "marco", refreshed.User.Username)
}

func TestRefresh_Garbage(t *testing.T) {
	svc, _ := buildAuthSvc()
	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.Error(t, err)
}

func TestRefresh_DeactivatedSinceIssue(t *testing.T) {
	svc, repo := buildAuthSvc()
	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "marco", Password: "correct-horse-battery", Role: model.RoleStaff,
	})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "marco", Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	// Deactivation revokes refresh immediately.
	for _, u := range repo.users {
		u.IsActive = false
	}
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	svc, _ := buildAuthSvc()
	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "marco", Password: "correct-horse-battery", Role: model.RoleStaff,
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "marco", Password: "another-password", Role: model.RoleAdmin,
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestCreateUser_HashesPassword(t *testing.T) {
	svc, repo := buildAuthSvc()
	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "marco", Password: "correct-horse-battery", Role: model.RoleStaff,
	})
	require.NoError(t, err)

	for _, u := range repo.users {
		assert.NotEqual(t, "correct-horse-battery", u.PasswordHash)
		assert.NotContains(t, u.PasswordHash, "correct-horse")
	}
}
