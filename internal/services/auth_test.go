package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crm-console/internal/dto"
	"crm-console/internal/entities"
	"crm-console/internal/repositories"
	"crm-console/pkg/config"
	"crm-console/pkg/contextkeys"
	"crm-console/pkg/customvalidator"
	apperrors "crm-console/pkg/errors"
	"crm-console/pkg/service"
	"crm-console/pkg/utils"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo, service.JWTService) {
	t.Helper()
	hash, err := utils.HashPassword("Admin#Pass2024")
	require.NoError(t, err)
	users := newFakeUserRepo(&entities.User{
		ID: 1, Name: "Admin", Email: "admin@example.com", Password: hash,
		RoleID: 1, RoleName: entities.RoleAdmin, MustChangePassword: true,
	})
	jwtSvc := service.NewJWTService("test-secret", time.Hour, zap.NewNop())
	cfg := &config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: time.Minute}
	svc := NewAuthService(users, repositories.NewMemoryCacheRepository(), jwtSvc, zap.NewNop(), cfg).(*AuthService)
	return svc, users, jwtSvc
}

func withActor(id int) context.Context {
	return context.WithValue(context.Background(), contextkeys.UserIDKey, id)
}

func TestLogin_IssuesTokenWithRoleAndMustChangeFlag(t *testing.T) {
	svc, _, jwtSvc := newAuthFixture(t)

	res, err := svc.Login(context.Background(), dto.LoginDTO{Email: "ADMIN@example.com", Password: "Admin#Pass2024"})
	require.NoError(t, err)
	assert.True(t, res.MustChangePassword)

	claims, err := jwtSvc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, entities.RoleAdmin, claims.RoleName)
}

func TestLogin_LocksOutAfterMaxAttempts(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()
	bad := dto.LoginDTO{Email: "admin@example.com", Password: "wrong"}

	for i := 0; i < 3; i++ {
		_, err := svc.Login(ctx, bad)
		assert.Equal(t, http.StatusUnauthorized, apperrors.StatusCode(err))
	}

	_, err := svc.Login(ctx, dto.LoginDTO{Email: "admin@example.com", Password: "Admin#Pass2024"})
	require.Error(t, err)
	assert.Equal(t, http.StatusTooManyRequests, apperrors.StatusCode(err))
}

func TestLogin_SuccessResetsFailures(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, _ = svc.Login(ctx, dto.LoginDTO{Email: "admin@example.com", Password: "wrong"})
	}
	_, err := svc.Login(ctx, dto.LoginDTO{Email: "admin@example.com", Password: "Admin#Pass2024"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, _ = svc.Login(ctx, dto.LoginDTO{Email: "admin@example.com", Password: "wrong"})
	}
	_, err = svc.Login(ctx, dto.LoginDTO{Email: "admin@example.com", Password: "Admin#Pass2024"})
	assert.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	svc, users, _ := newAuthFixture(t)

	err := svc.ChangePassword(withActor(1), dto.ChangePasswordDTO{OldPassword: "nope", NewPassword: "New#Password12"})
	var appErr *apperrors.ApplicationError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Fields, "oldPassword")

	require.NoError(t, svc.ChangePassword(withActor(1), dto.ChangePasswordDTO{OldPassword: "Admin#Pass2024", NewPassword: "New#Password12"}))
	assert.False(t, users.users[1].MustChangePassword)
	assert.NoError(t, utils.ComparePasswords(users.users[1].Password, "New#Password12"))

	assert.ErrorIs(t, svc.ChangePassword(context.Background(), dto.ChangePasswordDTO{}), apperrors.ErrUserIDNotFoundInContext)
}

func TestSetDefaultPassword_ForcesChange(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	users.users[1].MustChangePassword = false

	password, err := svc.SetDefaultPassword(withActor(1), 1)
	require.NoError(t, err)
	assert.True(t, customvalidator.IsStrongPassword(password))
	assert.True(t, users.mustChange[1])
	assert.NoError(t, utils.ComparePasswords(users.users[1].Password, password))

	_, err = svc.SetDefaultPassword(withActor(1), 404)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
