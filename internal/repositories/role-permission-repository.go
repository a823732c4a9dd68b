package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"crm-console/internal/entities"
)

type RolePermissionRepositoryInterface interface {
	ListByRole(ctx context.Context, roleID int) ([]entities.RolePermission, error)
	// Activate создаёт связь или снова включает выключенную.
	Activate(ctx context.Context, roleID, permissionID int) error
	Deactivate(ctx context.Context, roleID, permissionID int) error
	RoleIDsByPermission(ctx context.Context, permissionID int) ([]int, error)
}

type RolePermissionRepository struct {
	storage *pgxpool.Pool
}

func NewRolePermissionRepository(storage *pgxpool.Pool) RolePermissionRepositoryInterface {
	return &RolePermissionRepository{storage: storage}
}

func (r *RolePermissionRepository) ListByRole(ctx context.Context, roleID int) ([]entities.RolePermission, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT rp.id, rp.role_id, rp.permission_id, rp.is_active, p.name, p.route_path
		FROM role_permissions rp
		INNER JOIN permissions p ON p.id = rp.permission_id
		WHERE rp.role_id = $1 AND rp.is_active
		ORDER BY p.name`, roleID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения связей роли: %w", err)
	}
	defer rows.Close()

	list := make([]entities.RolePermission, 0)
	for rows.Next() {
		var rp entities.RolePermission
		if err := rows.Scan(&rp.ID, &rp.RoleID, &rp.PermissionID, &rp.IsActive, &rp.Name, &rp.RoutePath); err != nil {
			return nil, fmt.Errorf("ошибка сканирования связи роли: %w", err)
		}
		list = append(list, rp)
	}
	return list, rows.Err()
}

func (r *RolePermissionRepository) Activate(ctx context.Context, roleID, permissionID int) error {
	_, err := r.storage.Exec(ctx, `
		INSERT INTO role_permissions (role_id, permission_id, is_active) VALUES ($1, $2, TRUE)
		ON CONFLICT (role_id, permission_id) DO UPDATE SET is_active = TRUE`, roleID, permissionID)
	if err != nil {
		return fmt.Errorf("ошибка привязки права к роли: %w", mapPgError(err))
	}
	return nil
}

func (r *RolePermissionRepository) Deactivate(ctx context.Context, roleID, permissionID int) error {
	return execOne(ctx, r.storage,
		`UPDATE role_permissions SET is_active = FALSE WHERE role_id = $1 AND permission_id = $2 AND is_active`,
		[]interface{}{roleID, permissionID}, "ошибка отвязки права от роли")
}

func (r *RolePermissionRepository) RoleIDsByPermission(ctx context.Context, permissionID int) ([]int, error) {
	rows, err := r.storage.Query(ctx, `SELECT role_id FROM role_permissions WHERE permission_id = $1`, permissionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
