package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	db "crm-console/internal/infrastructure/bd"
	"crm-console/internal/entities"
	"crm-console/pkg/types"
)

var leadSelectColumns = []string{
	"l.id", "l.title", "l.description", "l.source",
	"l.contact_name", "l.contact_email", "l.contact_phone",
	"l.status_id", "s.name",
	"l.assigned_to", "assignee.name",
	"l.created_by", "creator.name",
	"l.updated_by", "updater.name",
	"l.address_house", "l.address_street", "l.address_city", "l.address_postcode", "l.address_country",
	"l.address_latitude::text", "l.address_longitude::text",
	"l.note", "l.created_at", "l.updated_at",
}

// LeadFilterMap - поля фильтра списка лидов и их колонки.
var LeadFilterMap = map[string]string{
	"lead_Status":      "s.name",
	"lead_Assigned_To": "l.assigned_to",
	"lead_Created_By":  "l.created_by",
}

// LeadSortMap - поля сортировки списка лидов.
var LeadSortMap = map[string]string{
	"lead_Id":               "l.id",
	"lead_Title":            "l.title",
	"lead_Source":           "l.source",
	"lead_Contact_Name":     "l.contact_name",
	"lead_Contact_Email":    "l.contact_email",
	"lead_Status":           "s.name",
	"lead_Assigned_To_Name": "assignee.name",
	"lead_Created_By_Name":  "creator.name",
	"created_at":            "l.created_at",
}

var leadSearchColumns = []string{"l.title", "l.contact_name", "l.contact_email", "l.contact_phone", "l.source"}

type LeadRepositoryInterface interface {
	List(ctx context.Context, filter types.Filter) ([]entities.Lead, uint64, error)
	FindByID(ctx context.Context, id int) (*entities.Lead, error)
	// LockStatusInTx блокирует строку лида до конца транзакции и отдаёт текущий статус.
	LockStatusInTx(ctx context.Context, tx pgx.Tx, id int) (int, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, lead *entities.Lead) (int, error)
	UpdateInTx(ctx context.Context, tx pgx.Tx, lead *entities.Lead) error
	UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id, statusID, updatedBy int) error
	Delete(ctx context.Context, id, deletedBy int) error
}

type LeadRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewLeadRepository(storage *pgxpool.Pool, logger *zap.Logger) LeadRepositoryInterface {
	return &LeadRepository{storage: storage, logger: logger}
}

func leadBase(columns ...string) sq.SelectBuilder {
	return db.Psql.Select(columns...).
		From("leads l").
		Join("lead_statuses s ON s.id = l.status_id").
		Join("users creator ON creator.id = l.created_by").
		LeftJoin("users assignee ON assignee.id = l.assigned_to").
		LeftJoin("users updater ON updater.id = l.updated_by").
		Where(sq.Eq{"l.deleted_at": nil})
}

func scanLead(row pgx.Row) (*entities.Lead, error) {
	var l entities.Lead
	err := row.Scan(
		&l.ID, &l.Title, &l.Description, &l.Source,
		&l.ContactName, &l.ContactEmail, &l.ContactPhone,
		&l.StatusID, &l.StatusName,
		&l.AssignedTo, &l.AssignedToName,
		&l.CreatedBy, &l.CreatedByName,
		&l.UpdatedBy, &l.UpdatedByName,
		&l.AddressHouse, &l.AddressStreet, &l.AddressCity, &l.AddressPostcode, &l.AddressCountry,
		&l.AddressLatitude, &l.AddressLongitude,
		&l.Note, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &l, nil
}

func (r *LeadRepository) List(ctx context.Context, filter types.Filter) ([]entities.Lead, uint64, error) {
	countBuilder := db.ApplyFilters(leadBase("COUNT(l.id)"), filter, LeadFilterMap)
	countBuilder = db.ApplySearch(countBuilder, filter.Search, leadSearchColumns)
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки COUNT-запроса лидов: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета лидов: %w", err)
	}
	if total == 0 {
		return []entities.Lead{}, 0, nil
	}

	builder := db.ApplyFilters(leadBase(leadSelectColumns...), filter, LeadFilterMap)
	builder = db.ApplySearch(builder, filter.Search, leadSearchColumns)
	builder = db.ApplyListParams(builder, filter, LeadSortMap, "l.id DESC")
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса лидов: %w", err)
	}

	r.logger.Debug("Запрос списка лидов", zap.String("sql", query))
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения лидов: %w", err)
	}
	defer rows.Close()

	leads := make([]entities.Lead, 0, filter.Limit)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования лида: %w", err)
		}
		leads = append(leads, *l)
	}
	return leads, total, rows.Err()
}

func (r *LeadRepository) FindByID(ctx context.Context, id int) (*entities.Lead, error) {
	query, args, err := leadBase(leadSelectColumns...).Where(sq.Eq{"l.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanLead(r.storage.QueryRow(ctx, query, args...))
}

func (r *LeadRepository) LockStatusInTx(ctx context.Context, tx pgx.Tx, id int) (int, error) {
	var statusID int
	err := tx.QueryRow(ctx,
		`SELECT status_id FROM leads WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id,
	).Scan(&statusID)
	if err != nil {
		return 0, notFoundOr(err)
	}
	return statusID, nil
}

// numeric принимает координату строкой; пустое значение пишется как NULL.
func numeric(v *string) sq.Sqlizer {
	return sq.Expr("CAST(? AS TEXT)::numeric", v)
}

func (r *LeadRepository) CreateInTx(ctx context.Context, tx pgx.Tx, lead *entities.Lead) (int, error) {
	query, args, err := db.Psql.Insert("leads").
		Columns(
			"title", "description", "source", "contact_name", "contact_email", "contact_phone",
			"status_id", "assigned_to", "created_by",
			"address_house", "address_street", "address_city", "address_postcode", "address_country",
			"address_latitude", "address_longitude", "note",
		).
		Values(
			lead.Title, lead.Description, lead.Source, lead.ContactName, lead.ContactEmail, lead.ContactPhone,
			lead.StatusID, lead.AssignedTo.Ptr(), lead.CreatedBy,
			lead.AddressHouse, lead.AddressStreet, lead.AddressCity, lead.AddressPostcode, lead.AddressCountry,
			numeric(lead.AddressLatitude.Ptr()), numeric(lead.AddressLongitude.Ptr()), lead.Note,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id int
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("ошибка создания лида: %w", mapPgError(err))
	}
	return id, nil
}

func (r *LeadRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, lead *entities.Lead) error {
	query, args, err := db.Psql.Update("leads").
		SetMap(map[string]interface{}{
			"title":             lead.Title,
			"description":       lead.Description,
			"source":            lead.Source,
			"contact_name":      lead.ContactName,
			"contact_email":     lead.ContactEmail,
			"contact_phone":     lead.ContactPhone,
			"status_id":         lead.StatusID,
			"assigned_to":       lead.AssignedTo.Ptr(),
			"updated_by":        lead.UpdatedBy.Ptr(),
			"address_house":     lead.AddressHouse,
			"address_street":    lead.AddressStreet,
			"address_city":      lead.AddressCity,
			"address_postcode":  lead.AddressPostcode,
			"address_country":   lead.AddressCountry,
			"address_latitude":  numeric(lead.AddressLatitude.Ptr()),
			"address_longitude": numeric(lead.AddressLongitude.Ptr()),
			"note":              lead.Note,
			"updated_at":        sq.Expr("NOW()"),
		}).
		Where(sq.Eq{"id": lead.ID, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return err
	}
	return execOne(ctx, tx, query, args, "ошибка обновления лида")
}

func (r *LeadRepository) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id, statusID, updatedBy int) error {
	return execOne(ctx, tx,
		`UPDATE leads SET status_id = $1, updated_by = $2, updated_at = NOW() WHERE id = $3 AND deleted_at IS NULL`,
		[]interface{}{statusID, updatedBy, id}, "ошибка смены статуса лида")
}

// Delete - мягкое удаление: история статусов сохраняется.
func (r *LeadRepository) Delete(ctx context.Context, id, deletedBy int) error {
	return execOne(ctx, r.storage,
		`UPDATE leads SET deleted_at = NOW(), updated_by = $1 WHERE id = $2 AND deleted_at IS NULL`,
		[]interface{}{deletedBy, id}, "ошибка удаления лида")
}
