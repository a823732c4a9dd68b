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

type RoleRepositoryInterface interface {
	List(ctx context.Context, filter types.Filter) ([]entities.Role, uint64, error)
	FindByID(ctx context.Context, id int) (*entities.Role, error)
	FindByName(ctx context.Context, name string) (*entities.Role, error)
	Create(ctx context.Context, name string) (int, error)
	Update(ctx context.Context, id int, name string) error
	Delete(ctx context.Context, id int) error
}

type RoleRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewRoleRepository(storage *pgxpool.Pool, logger *zap.Logger) RoleRepositoryInterface {
	return &RoleRepository{storage: storage, logger: logger}
}

func scanRole(row pgx.Row) (*entities.Role, error) {
	var role entities.Role
	if err := row.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return nil, notFoundOr(err)
	}
	return &role, nil
}

func roleSelect() sq.SelectBuilder {
	return db.Psql.Select("id", "name", "created_at", "updated_at").From("roles")
}

func (r *RoleRepository) List(ctx context.Context, filter types.Filter) ([]entities.Role, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM roles").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета ролей: %w", err)
	}

	query, args, err := db.ApplyListParams(roleSelect(), filter,
		map[string]string{"role_Id": "id", "role_Name": "name"}, "id ASC").ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка ролей: %w", err)
	}
	defer rows.Close()

	roles := make([]entities.Role, 0)
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования строки роли: %w", err)
		}
		roles = append(roles, *role)
	}
	return roles, total, rows.Err()
}

func (r *RoleRepository) FindByID(ctx context.Context, id int) (*entities.Role, error) {
	query, args, err := roleSelect().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanRole(r.storage.QueryRow(ctx, query, args...))
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*entities.Role, error) {
	query, args, err := roleSelect().Where(sq.Eq{"name": name}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanRole(r.storage.QueryRow(ctx, query, args...))
}

func (r *RoleRepository) Create(ctx context.Context, name string) (int, error) {
	var id int
	err := r.storage.QueryRow(ctx, `INSERT INTO roles (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания роли: %w", mapPgError(err))
	}
	return id, nil
}

func (r *RoleRepository) Update(ctx context.Context, id int, name string) error {
	return execOne(ctx, r.storage, `UPDATE roles SET name = $1, updated_at = NOW() WHERE id = $2`,
		[]interface{}{name, id}, "ошибка обновления роли")
}

// Delete не удаляет роль, назначенную пользователям: вернётся ErrInUse.
func (r *RoleRepository) Delete(ctx context.Context, id int) error {
	return execOne(ctx, r.storage, `DELETE FROM roles WHERE id = $1`, []interface{}{id}, "ошибка удаления роли")
}
