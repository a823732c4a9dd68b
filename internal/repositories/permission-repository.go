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

type PermissionRepositoryInterface interface {
	List(ctx context.Context, filter types.Filter) ([]entities.Permission, uint64, error)
	FindByID(ctx context.Context, id int) (*entities.Permission, error)
	Create(ctx context.Context, p *entities.Permission) (int, error)
	Update(ctx context.Context, p *entities.Permission) error
	Delete(ctx context.Context, id int) error
	// GetRoutePathsByRoleID - маршруты, открытые роли через активные связи.
	GetRoutePathsByRoleID(ctx context.Context, roleID int) ([]string, error)
}

type PermissionRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewPermissionRepository(storage *pgxpool.Pool, logger *zap.Logger) PermissionRepositoryInterface {
	return &PermissionRepository{storage: storage, logger: logger}
}

func scanPermission(row pgx.Row) (*entities.Permission, error) {
	var p entities.Permission
	if err := row.Scan(&p.ID, &p.Name, &p.RoutePath, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, notFoundOr(err)
	}
	return &p, nil
}

func permissionSelect() sq.SelectBuilder {
	return db.Psql.Select("id", "name", "route_path", "created_at", "updated_at").From("permissions")
}

func (r *PermissionRepository) List(ctx context.Context, filter types.Filter) ([]entities.Permission, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM permissions").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета прав: %w", err)
	}

	query, args, err := db.ApplyListParams(permissionSelect(), filter, map[string]string{
		"permission_Id":         "id",
		"permission_Name":       "name",
		"permission_Route_Path": "route_path",
	}, "id ASC").ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения прав: %w", err)
	}
	defer rows.Close()

	list := make([]entities.Permission, 0)
	for rows.Next() {
		p, err := scanPermission(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования права: %w", err)
		}
		list = append(list, *p)
	}
	return list, total, rows.Err()
}

func (r *PermissionRepository) FindByID(ctx context.Context, id int) (*entities.Permission, error) {
	query, args, err := permissionSelect().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanPermission(r.storage.QueryRow(ctx, query, args...))
}

func (r *PermissionRepository) Create(ctx context.Context, p *entities.Permission) (int, error) {
	var id int
	err := r.storage.QueryRow(ctx,
		`INSERT INTO permissions (name, route_path) VALUES ($1, $2) RETURNING id`,
		p.Name, p.RoutePath,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания права: %w", mapPgError(err))
	}
	return id, nil
}

func (r *PermissionRepository) Update(ctx context.Context, p *entities.Permission) error {
	return execOne(ctx, r.storage,
		`UPDATE permissions SET name = $1, route_path = $2, updated_at = NOW() WHERE id = $3`,
		[]interface{}{p.Name, p.RoutePath, p.ID}, "ошибка обновления права")
}

func (r *PermissionRepository) Delete(ctx context.Context, id int) error {
	return execOne(ctx, r.storage, `DELETE FROM permissions WHERE id = $1`, []interface{}{id}, "ошибка удаления права")
}

func (r *PermissionRepository) GetRoutePathsByRoleID(ctx context.Context, roleID int) ([]string, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT p.route_path FROM permissions p
		INNER JOIN role_permissions rp ON rp.permission_id = p.id
		WHERE rp.role_id = $1 AND rp.is_active
		ORDER BY p.route_path`, roleID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения прав роли: %w", err)
	}
	defer rows.Close()

	paths := make([]string, 0)
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}
