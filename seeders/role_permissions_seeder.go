package seeders

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"crm-console/internal/entities"
	"crm-console/internal/routes"
)

// seedRolePermissions выдаёт роли Agent права по умолчанию. Admin проходит проверку прав без связей.
func seedRolePermissions(ctx context.Context, db *pgxpool.Pool) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var agentRoleID int
	if err := tx.QueryRow(ctx, `SELECT id FROM roles WHERE name = $1`, entities.RoleAgent).Scan(&agentRoleID); err != nil {
		return err
	}

	query := `INSERT INTO role_permissions (role_id, permission_id, is_active)
		SELECT $1, id, TRUE FROM permissions WHERE route_path = $2
		ON CONFLICT (role_id, permission_id) DO NOTHING`
	for _, r := range routes.ProtectedRoutes {
		if !r.Agent {
			continue
		}
		if _, err := tx.Exec(ctx, query, agentRoleID, r.Path); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
