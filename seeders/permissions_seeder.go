package seeders

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"crm-console/internal/routes"
)

// seedPermissions заводит право на каждый защищённый маршрут API.
func seedPermissions(ctx context.Context, db *pgxpool.Pool) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO permissions (name, route_path) VALUES ($1, $2)
		ON CONFLICT (route_path) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()`
	for _, r := range routes.ProtectedRoutes {
		if _, err := tx.Exec(ctx, query, r.Name, r.Path); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
