package seeders

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"crm-console/internal/entities"
	"crm-console/pkg/utils"
)

func seedAdminUser(ctx context.Context, db *pgxpool.Pool, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = $1 AND deleted_at IS NULL)`, email,
	).Scan(&exists)
	if err != nil || exists {
		return false, err
	}

	var roleID int
	if err := db.QueryRow(ctx, `SELECT id FROM roles WHERE name = $1`, entities.RoleAdmin).Scan(&roleID); err != nil {
		return false, fmt.Errorf("не найдена роль %q: %w", entities.RoleAdmin, err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, err
	}
	_, err = db.Exec(ctx,
		`INSERT INTO users (name, email, password, role_id, must_change_password) VALUES ($1, $2, $3, $4, TRUE)`,
		"Administrator", email, hash, roleID)
	return err == nil, err
}
