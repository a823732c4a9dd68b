package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crm-console/pkg/api"
	"crm-console/pkg/contextkeys"
	apperrors "crm-console/pkg/errors"
	"crm-console/pkg/service"
)

// PermissionChecker решает, может ли роль вызывать маршрут.
type PermissionChecker interface {
	CanAccess(ctx context.Context, roleID int, roleName string, routePath string) (bool, error)
}

type AuthMiddleware struct {
	jwtService service.JWTService
	checker    PermissionChecker
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, checker PermissionChecker, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		checker:    checker,
		logger:     logger.Named("auth-mw"),
	}
}

// ExtractToken принимает "Bearer <token>" и голый токен.
func ExtractToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", apperrors.ErrEmptyAuthHeader
	}
	parts := strings.Fields(header)
	switch {
	case len(parts) == 1:
		return parts[0], nil
	case len(parts) == 2 && strings.EqualFold(parts[0], "Bearer"):
		return parts[1], nil
	}
	return "", apperrors.ErrInvalidAuthHeader
}

// Auth проверяет токен и кладёт пользователя и роль в контекст запроса.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, err := ExtractToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			m.logger.Warn("Неверный заголовок Authorization", zap.Error(err))
			return api.ErrorResponse(c, err, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			m.logger.Warn("Ошибка валидации токена", zap.Error(err))
			return api.ErrorResponse(c, err, m.logger)
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, contextkeys.RoleIDKey, claims.RoleID)
		ctx = context.WithValue(ctx, contextkeys.RoleNameKey, claims.RoleName)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// Authorize пропускает запрос, если роли разрешён путь текущего маршрута.
func (m *AuthMiddleware) Authorize(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		roleID, _ := ctx.Value(contextkeys.RoleIDKey).(int)
		roleName, _ := ctx.Value(contextkeys.RoleNameKey).(string)

		ok, err := m.checker.CanAccess(ctx, roleID, roleName, c.Path())
		if err != nil {
			return api.ErrorResponse(c, err, m.logger)
		}
		if !ok {
			m.logger.Info("Доступ запрещён", zap.Int("roleID", roleID), zap.String("path", c.Path()))
			return api.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
		}
		return next(c)
	}
}
