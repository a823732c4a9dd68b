package seeders

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedRoles(ctx context.Context, db *pgxpool.Pool) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, name := range rolesData {
		if _, err := tx.Exec(ctx, `INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
