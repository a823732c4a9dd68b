package seeders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"crm-console/internal/entities"
	"crm-console/pkg/utils"
)

// SeedDemo добавляет агентов и несколько лидов для ручной проверки консоли.
// Лиды создаются только в пустой базе.
func SeedDemo(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var agentRoleID, adminID int
	if err := tx.QueryRow(ctx, `SELECT id FROM roles WHERE name = $1`, entities.RoleAgent).Scan(&agentRoleID); err != nil {
		return fmt.Errorf("не найдена роль %q: %w", entities.RoleAgent, err)
	}
	err = tx.QueryRow(ctx, `
		SELECT u.id FROM users u JOIN roles r ON r.id = u.role_id
		WHERE r.name = $1 AND u.deleted_at IS NULL ORDER BY u.id LIMIT 1`, entities.RoleAdmin).Scan(&adminID)
	if err != nil {
		return fmt.Errorf("сначала создайте администратора: %w", err)
	}

	hash, err := utils.HashPassword(demoAgentPassword)
	if err != nil {
		return err
	}
	agentIDs := make([]int, len(demoAgents))
	for i, a := range demoAgents {
		err := tx.QueryRow(ctx, `SELECT id FROM users WHERE LOWER(email) = $1 AND deleted_at IS NULL`, a.Email).Scan(&agentIDs[i])
		if err == nil {
			continue
		}
		err = tx.QueryRow(ctx,
			`INSERT INTO users (name, email, password, role_id) VALUES ($1, $2, $3, $4) RETURNING id`,
			a.Name, a.Email, hash, agentRoleID,
		).Scan(&agentIDs[i])
		if err != nil {
			return err
		}
	}

	var leadCount int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&leadCount); err != nil {
		return err
	}
	if leadCount > 0 {
		logger.Info("Лиды уже есть, демо-лиды не добавляются", zap.Int("count", leadCount))
		return tx.Commit(ctx)
	}

	for _, l := range demoLeads {
		var assigned *int
		if l.AgentIdx >= 0 {
			assigned = &agentIDs[l.AgentIdx]
		}
		var leadID, statusID int
		err := tx.QueryRow(ctx, `
			INSERT INTO leads (title, contact_name, contact_email, contact_phone, source, address_city, status_id, assigned_to, created_by)
			SELECT $1, $2, $3, $4, $5, $6, s.id, $8, $9 FROM lead_statuses s WHERE s.name = $7
			RETURNING id, status_id`,
			l.Title, l.ContactName, l.Email, l.Phone, l.Source, l.City, l.Status, assigned, adminID,
		).Scan(&leadID, &statusID)
		if err != nil {
			return fmt.Errorf("ошибка создания демо-лида %q: %w", l.Title, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO lead_status_history (lead_id, new_status_id, changed_by, remarks) VALUES ($1, $2, $3, 'Lead created')`,
			leadID, statusID, adminID,
		); err != nil {
			return err
		}
	}
	logger.Info("Демо-данные добавлены", zap.Int("agents", len(demoAgents)), zap.Int("leads", len(demoLeads)))
	return tx.Commit(ctx)
}
