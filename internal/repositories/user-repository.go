package repositories

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	db "crm-console/internal/infrastructure/bd"
	"crm-console/internal/entities"
	apperrors "crm-console/pkg/errors"
	"crm-console/pkg/types"
)

var userSelectColumns = []string{
	"u.id", "u.name", "u.email", "u.password", "u.role_id", "r.name",
	"u.must_change_password", "u.created_at", "u.updated_at",
}

var userSortMap = map[string]string{
	"user_Id":    "u.id",
	"user_Name":  "u.name",
	"user_Email": "u.email",
	"role_Name":  "r.name",
}

type UserRepositoryInterface interface {
	List(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindByID(ctx context.Context, id int) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	ListByRoles(ctx context.Context, roleNames []string) ([]entities.User, error)
	Create(ctx context.Context, user *entities.User) (int, error)
	Update(ctx context.Context, user *entities.User) error
	UpdatePassword(ctx context.Context, userID int, hash string, mustChange bool) error
	Delete(ctx context.Context, id int) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.RoleID, &u.RoleName,
		&u.MustChangePassword, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &u, nil
}

func activeUsers() sq.SelectBuilder {
	return db.Psql.Select(userSelectColumns...).
		From("users u").
		Join("roles r ON r.id = u.role_id").
		Where(sq.Eq{"u.deleted_at": nil})
}

func (r *UserRepository) List(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	var total uint64
	countSQL, countArgs, err := db.Psql.Select("COUNT(*)").From("users u").Where(sq.Eq{"u.deleted_at": nil}).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки COUNT-запроса пользователей: %w", err)
	}
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета пользователей: %w", err)
	}

	query, args, err := db.ApplyListParams(activeUsers(), filter, userSortMap, "u.id ASC").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса пользователей: %w", err)
	}
	users, err := r.collect(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) collect(ctx context.Context, query string, args []interface{}) ([]entities.User, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пользователей: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования пользователя: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (*entities.User, error) {
	query, args, err := activeUsers().Where(sq.Eq{"u.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.storage.QueryRow(ctx, query, args...))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	query, args, err := activeUsers().
		Where(sq.Expr("LOWER(u.email) = ?", strings.ToLower(strings.TrimSpace(email)))).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.storage.QueryRow(ctx, query, args...))
}

func (r *UserRepository) ListByRoles(ctx context.Context, roleNames []string) ([]entities.User, error) {
	query, args, err := activeUsers().Where(sq.Eq{"r.name": roleNames}).OrderBy("u.name ASC").ToSql()
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, query, args)
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) (int, error) {
	query, args, err := db.Psql.Insert("users").
		Columns("name", "email", "password", "role_id", "must_change_password").
		Values(user.Name, user.Email, user.Password, user.RoleID, user.MustChangePassword).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id int
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("ошибка создания пользователя: %w", mapPgError(err))
	}
	return id, nil
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	query, args, err := db.Psql.Update("users").
		Set("name", user.Name).
		Set("email", user.Email).
		Set("role_id", user.RoleID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": user.ID, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return err
	}
	return r.execOne(ctx, query, args, "ошибка обновления пользователя")
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID int, hash string, mustChange bool) error {
	query, args, err := db.Psql.Update("users").
		Set("password", hash).
		Set("must_change_password", mustChange).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": userID, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return err
	}
	return r.execOne(ctx, query, args, "ошибка обновления пароля")
}

// Delete помечает пользователя удалённым; его лиды и история остаются.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	query, args, err := db.Psql.Update("users").
		Set("deleted_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return err
	}
	return r.execOne(ctx, query, args, "ошибка удаления пользователя")
}

func (r *UserRepository) execOne(ctx context.Context, query string, args []interface{}, msg string) error {
	return execOne(ctx, r.storage, query, args, msg)
}

// execOne выполняет запрос и возвращает ErrNotFound, если не затронута ни одна строка.
func execOne(ctx context.Context, q querier, query string, args []interface{}, msg string) error {
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", msg, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
