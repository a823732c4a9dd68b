package seeders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"crm-console/pkg/config"
)

// SeedCoreDictionaries наполняет статусы, роли, права и связи ролей с правами.
// Повторный запуск ничего не дублирует.
func SeedCoreDictionaries(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	logger.Info("Наполнение базовых справочников")

	steps := []struct {
		name string
		fn   func(context.Context, *pgxpool.Pool) error
	}{
		{"lead_statuses", seedStatuses},
		{"roles", seedRoles},
		{"permissions", seedPermissions},
		{"role_permissions", seedRolePermissions},
	}
	for _, step := range steps {
		if err := step.fn(ctx, db); err != nil {
			return fmt.Errorf("ошибка наполнения %s: %w", step.name, err)
		}
		logger.Info("Справочник наполнен", zap.String("table", step.name))
	}
	return nil
}

// SeedAdmin создаёт администратора с обязательной сменой пароля при первом входе.
func SeedAdmin(ctx context.Context, db *pgxpool.Pool, cfg config.SeedConfig, logger *zap.Logger) error {
	created, err := seedAdminUser(ctx, db, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("ошибка создания администратора: %w", err)
	}
	if created {
		logger.Info("Администратор создан", zap.String("email", cfg.AdminEmail))
	} else {
		logger.Info("Администратор уже существует, пропускаем", zap.String("email", cfg.AdminEmail))
	}
	return nil
}
