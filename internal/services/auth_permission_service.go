package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"crm-console/internal/entities"
	"crm-console/internal/repositories"
)

type AuthPermissionServiceInterface interface {
	// CanAccess: Admin открыты все маршруты, остальным - из их прав.
	CanAccess(ctx context.Context, roleID int, roleName string, routePath string) (bool, error)
	GetRoleRoutePaths(ctx context.Context, roleID int) ([]string, error)
	InvalidateRolePermissionsCache(ctx context.Context, roleIDs ...int)
}

type AuthPermissionService struct {
	permissionRepo repositories.PermissionRepositoryInterface
	cacheRepo      repositories.CacheRepositoryInterface
	logger         *zap.Logger
	cacheTTL       time.Duration
}

func NewAuthPermissionService(
	permissionRepo repositories.PermissionRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cacheTTL time.Duration,
) AuthPermissionServiceInterface {
	return &AuthPermissionService{
		permissionRepo: permissionRepo,
		cacheRepo:      cacheRepo,
		logger:         logger,
		cacheTTL:       cacheTTL,
	}
}

func permissionsCacheKey(roleID int) string {
	return fmt.Sprintf("auth:permissions:role:%d", roleID)
}

func (s *AuthPermissionService) CanAccess(ctx context.Context, roleID int, roleName string, routePath string) (bool, error) {
	if roleName == entities.RoleAdmin {
		return true, nil
	}
	paths, err := s.GetRoleRoutePaths(ctx, roleID)
	if err != nil {
		return false, err
	}
	for _, p := range paths {
		if p == routePath {
			return true, nil
		}
	}
	return false, nil
}

func (s *AuthPermissionService) GetRoleRoutePaths(ctx context.Context, roleID int) ([]string, error) {
	cacheKey := permissionsCacheKey(roleID)
	var paths []string

	cached, errGet := s.cacheRepo.Get(ctx, cacheKey)
	if errGet == nil {
		if err := json.Unmarshal([]byte(cached), &paths); err == nil {
			s.logger.Debug("Права роли найдены в кеше", zap.Int("roleID", roleID))
			return paths, nil
		} else {
			s.logger.Warn("Ошибка при десериализации прав из кеша", zap.Error(err), zap.String("key", cacheKey))
		}
	}

	paths, err := s.permissionRepo.GetRoutePathsByRoleID(ctx, roleID)
	if err != nil {
		s.logger.Error("Не удалось получить права роли из БД", zap.Int("roleID", roleID), zap.Error(err))
		return nil, err
	}

	raw, err := json.Marshal(paths)
	if err == nil {
		if errSet := s.cacheRepo.Set(ctx, cacheKey, string(raw), s.cacheTTL); errSet != nil {
			s.logger.Error("Не удалось сохранить права роли в кеш", zap.Int("roleID", roleID), zap.Error(errSet))
		}
	}
	return paths, nil
}

func (s *AuthPermissionService) InvalidateRolePermissionsCache(ctx context.Context, roleIDs ...int) {
	if len(roleIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(roleIDs))
	for _, id := range roleIDs {
		keys = append(keys, permissionsCacheKey(id))
	}
	if err := s.cacheRepo.Del(ctx, keys...); err != nil {
		s.logger.Error("Ошибка инвалидации кеша прав", zap.Ints("roleIDs", roleIDs), zap.Error(err))
		return
	}
	s.logger.Info("Кеш прав инвалидирован", zap.Ints("roleIDs", roleIDs))
}
