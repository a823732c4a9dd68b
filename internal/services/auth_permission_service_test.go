package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crm-console/internal/entities"
	"crm-console/internal/repositories"
)

func TestCanAccess(t *testing.T) {
	repo := &fakePermissionRepo{routes: map[int][]string{2: {"/sales/lead-list"}}}
	svc := NewAuthPermissionService(repo, repositories.NewMemoryCacheRepository(), zap.NewNop(), time.Minute)
	ctx := context.Background()

	ok, err := svc.CanAccess(ctx, 1, entities.RoleAdmin, "/user/delete-user")
	require.NoError(t, err)
	assert.True(t, ok, "администратор проходит без связей")
	assert.Equal(t, 0, repo.calls)

	ok, err = svc.CanAccess(ctx, 2, entities.RoleAgent, "/sales/lead-list")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanAccess(ctx, 2, entities.RoleAgent, "/user/userlist")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, repo.calls, "второй вызов берёт права из кеша")

	repo.routes[2] = append(repo.routes[2], "/user/userlist")
	svc.InvalidateRolePermissionsCache(ctx, 2)

	ok, err = svc.CanAccess(ctx, 2, entities.RoleAgent, "/user/userlist")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, repo.calls)
}
