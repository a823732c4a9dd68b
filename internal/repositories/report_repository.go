package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	db "crm-console/internal/infrastructure/bd"
	"crm-console/internal/entities"
	"crm-console/pkg/types"
)

type ReportRepositoryInterface interface {
	// AgentRows - агенты и их лиды по статусам, постранично.
	AgentRows(ctx context.Context, filter types.Filter) ([]entities.AgentReportRow, uint64, error)
	Totals(ctx context.Context) (entities.ReportTotals, error)
}

type reportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) ReportRepositoryInterface {
	return &reportRepository{db: pool}
}

func statusCount(name string) string {
	return fmt.Sprintf("COUNT(l.id) FILTER (WHERE s.name = '%s')", name)
}

func (r *reportRepository) AgentRows(ctx context.Context, filter types.Filter) ([]entities.AgentReportRow, uint64, error) {
	agents := db.Psql.Select().
		From("users u").
		Join("roles r ON r.id = u.role_id").
		Where(sq.Eq{"u.deleted_at": nil, "r.name": entities.RoleAgent})

	countSQL, countArgs, err := agents.Columns("COUNT(u.id)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки COUNT-запроса отчёта: %w", err)
	}
	var total uint64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета агентов: %w", err)
	}

	builder := agents.Columns(
		"u.id", "u.name", "u.email",
		"COUNT(l.id)",
		statusCount(entities.StatusPending),
		statusCount(entities.StatusWorking),
		statusCount(entities.StatusCompleted),
	).
		LeftJoin("leads l ON l.assigned_to = u.id AND l.deleted_at IS NULL").
		LeftJoin("lead_statuses s ON s.id = l.status_id").
		GroupBy("u.id", "u.name", "u.email")
	builder = db.ApplyListParams(builder, filter, map[string]string{
		"user_Name": "u.name",
		"total":     "COUNT(l.id)",
	}, "u.name ASC")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса отчёта: %w", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения отчёта: %w", err)
	}
	defer rows.Close()

	items := make([]entities.AgentReportRow, 0)
	for rows.Next() {
		var it entities.AgentReportRow
		if err := rows.Scan(&it.UserID, &it.UserName, &it.UserEmail, &it.Total, &it.Pending, &it.Working, &it.Completed); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования строки отчёта: %w", err)
		}
		items = append(items, it)
	}
	return items, total, rows.Err()
}

func (r *reportRepository) Totals(ctx context.Context) (entities.ReportTotals, error) {
	query, args, err := db.Psql.Select(
		"COUNT(l.id)",
		statusCount(entities.StatusPending),
		statusCount(entities.StatusWorking),
		statusCount(entities.StatusCompleted),
	).
		From("leads l").
		Join("lead_statuses s ON s.id = l.status_id").
		Where(sq.Eq{"l.deleted_at": nil}).
		ToSql()
	if err != nil {
		return entities.ReportTotals{}, err
	}
	var t entities.ReportTotals
	if err := r.db.QueryRow(ctx, query, args...).Scan(&t.Total, &t.Pending, &t.Working, &t.Completed); err != nil {
		return entities.ReportTotals{}, fmt.Errorf("ошибка подсчета итогов отчёта: %w", err)
	}
	return t, nil
}
