package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"crm-console/internal/entities"
)

type LeadStatusHistoryRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, entry *entities.LeadStatusHistory) error
	// ListByLead - записи в порядке появления.
	ListByLead(ctx context.Context, leadID int) ([]entities.LeadStatusHistory, error)
}

type LeadStatusHistoryRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewLeadStatusHistoryRepository(storage *pgxpool.Pool, logger *zap.Logger) LeadStatusHistoryRepositoryInterface {
	return &LeadStatusHistoryRepository{storage: storage, logger: logger}
}

func (r *LeadStatusHistoryRepository) CreateInTx(ctx context.Context, tx pgx.Tx, entry *entities.LeadStatusHistory) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO lead_status_history (lead_id, old_status_id, new_status_id, changed_by, comment, remarks)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		entry.LeadID, entry.OldStatusID.Ptr(), entry.NewStatusID, entry.ChangedBy, entry.Comment, entry.Remarks,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка записи истории статуса: %w", mapPgError(err))
	}
	r.logger.Debug("Запись истории статуса создана",
		zap.Int("leadID", entry.LeadID),
		zap.Int("newStatusID", entry.NewStatusID),
	)
	return nil
}

func (r *LeadStatusHistoryRepository) ListByLead(ctx context.Context, leadID int) ([]entities.LeadStatusHistory, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT h.id, h.lead_id, h.old_status_id, old_s.name, h.new_status_id, new_s.name,
		       h.changed_by, u.name, h.comment, h.remarks, h.created_at
		FROM lead_status_history h
		INNER JOIN lead_statuses new_s ON new_s.id = h.new_status_id
		LEFT JOIN lead_statuses old_s ON old_s.id = h.old_status_id
		INNER JOIN users u ON u.id = h.changed_by
		WHERE h.lead_id = $1
		ORDER BY h.created_at, h.id`, leadID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения истории статусов: %w", err)
	}
	defer rows.Close()

	history := make([]entities.LeadStatusHistory, 0)
	for rows.Next() {
		var h entities.LeadStatusHistory
		if err := rows.Scan(&h.ID, &h.LeadID, &h.OldStatusID, &h.OldStatusName, &h.NewStatusID, &h.NewStatusName,
			&h.ChangedBy, &h.ChangedByName, &h.Comment, &h.Remarks, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования истории статуса: %w", err)
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
