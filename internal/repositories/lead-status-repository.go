package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"crm-console/internal/entities"
)

type LeadStatusRepositoryInterface interface {
	List(ctx context.Context) ([]entities.LeadStatus, error)
	FindByID(ctx context.Context, id int) (*entities.LeadStatus, error)
	FindByName(ctx context.Context, name string) (*entities.LeadStatus, error)
}

type LeadStatusRepository struct {
	storage *pgxpool.Pool
}

func NewLeadStatusRepository(storage *pgxpool.Pool) LeadStatusRepositoryInterface {
	return &LeadStatusRepository{storage: storage}
}

func (r *LeadStatusRepository) List(ctx context.Context) ([]entities.LeadStatus, error) {
	rows, err := r.storage.Query(ctx, `SELECT id, name FROM lead_statuses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения статусов лидов: %w", err)
	}
	defer rows.Close()

	statuses := make([]entities.LeadStatus, 0)
	for rows.Next() {
		var s entities.LeadStatus
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}

func (r *LeadStatusRepository) FindByID(ctx context.Context, id int) (*entities.LeadStatus, error) {
	var s entities.LeadStatus
	if err := r.storage.QueryRow(ctx, `SELECT id, name FROM lead_statuses WHERE id = $1`, id).Scan(&s.ID, &s.Name); err != nil {
		return nil, notFoundOr(err)
	}
	return &s, nil
}

func (r *LeadStatusRepository) FindByName(ctx context.Context, name string) (*entities.LeadStatus, error) {
	var s entities.LeadStatus
	err := r.storage.QueryRow(ctx, `SELECT id, name FROM lead_statuses WHERE LOWER(name) = LOWER($1)`, name).Scan(&s.ID, &s.Name)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &s, nil
}
