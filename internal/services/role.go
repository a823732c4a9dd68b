package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"crm-console/internal/dto"
	"crm-console/internal/repositories"
	apperrors "crm-console/pkg/errors"
)

type RoleServiceInterface interface {
	List(ctx context.Context, page dto.PageDTO) (*dto.ListResult[dto.RoleDTO], error)
	Get(ctx context.Context, id int) (*dto.RoleDTO, error)
	Create(ctx context.Context, name string) (int, error)
	Update(ctx context.Context, id int, name string) error
	Delete(ctx context.Context, id int) error
	Permissions(ctx context.Context, roleID int) ([]dto.RolePermissionDTO, error)
	AddPermission(ctx context.Context, roleID, permissionID int) error
	RemovePermission(ctx context.Context, roleID, permissionID int) error
}

type RoleService struct {
	roleRepo       repositories.RoleRepositoryInterface
	permissionRepo repositories.PermissionRepositoryInterface
	rpRepo         repositories.RolePermissionRepositoryInterface
	authPermission AuthPermissionServiceInterface
	logger         *zap.Logger
}

func NewRoleService(
	roleRepo repositories.RoleRepositoryInterface,
	permissionRepo repositories.PermissionRepositoryInterface,
	rpRepo repositories.RolePermissionRepositoryInterface,
	authPermission AuthPermissionServiceInterface,
	logger *zap.Logger,
) RoleServiceInterface {
	return &RoleService{
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		rpRepo:         rpRepo,
		authPermission: authPermission,
		logger:         logger,
	}
}

func (s *RoleService) List(ctx context.Context, page dto.PageDTO) (*dto.ListResult[dto.RoleDTO], error) {
	filter := page.ToFilter()
	roles, total, err := s.roleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RoleDTO, 0, len(roles))
	for _, r := range roles {
		items = append(items, dto.RoleDTO{ID: r.ID, Name: r.Name})
	}
	return &dto.ListResult[dto.RoleDTO]{Items: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *RoleService) Get(ctx context.Context, id int) (*dto.RoleDTO, error) {
	r, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.RoleDTO{ID: r.ID, Name: r.Name}, nil
}

func roleNameTaken(err error) error {
	if errors.Is(err, apperrors.ErrAlreadyExists) {
		return fieldError("roleName", "Role already exists")
	}
	return err
}

func (s *RoleService) Create(ctx context.Context, name string) (int, error) {
	id, err := s.roleRepo.Create(ctx, strings.TrimSpace(name))
	if err != nil {
		return 0, roleNameTaken(err)
	}
	s.logger.Info("Роль создана", zap.Int("roleID", id), zap.String("name", name))
	return id, nil
}

func (s *RoleService) Update(ctx context.Context, id int, name string) error {
	return roleNameTaken(s.roleRepo.Update(ctx, id, strings.TrimSpace(name)))
}

func (s *RoleService) Delete(ctx context.Context, id int) error {
	if err := s.roleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrInUse) {
			return apperrors.NewApplicationError("Role is assigned to users and cannot be deleted", nil)
		}
		return err
	}
	s.authPermission.InvalidateRolePermissionsCache(ctx, id)
	s.logger.Info("Роль удалена", zap.Int("roleID", id))
	return nil
}

func (s *RoleService) Permissions(ctx context.Context, roleID int) ([]dto.RolePermissionDTO, error) {
	if _, err := s.roleRepo.FindByID(ctx, roleID); err != nil {
		return nil, err
	}
	links, err := s.rpRepo.ListByRole(ctx, roleID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RolePermissionDTO, 0, len(links))
	for _, l := range links {
		out = append(out, dto.RolePermissionDTO{
			RoleID:       l.RoleID,
			PermissionID: l.PermissionID,
			Name:         l.Name,
			RoutePath:    l.RoutePath,
		})
	}
	return out, nil
}

func (s *RoleService) AddPermission(ctx context.Context, roleID, permissionID int) error {
	if _, err := s.roleRepo.FindByID(ctx, roleID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fieldError("roleId", "Role does not exist")
		}
		return err
	}
	if _, err := s.permissionRepo.FindByID(ctx, permissionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fieldError("permissionId", "Permission does not exist")
		}
		return err
	}
	if err := s.rpRepo.Activate(ctx, roleID, permissionID); err != nil {
		return err
	}
	s.authPermission.InvalidateRolePermissionsCache(ctx, roleID)
	return nil
}

func (s *RoleService) RemovePermission(ctx context.Context, roleID, permissionID int) error {
	if err := s.rpRepo.Deactivate(ctx, roleID, permissionID); err != nil {
		return err
	}
	s.authPermission.InvalidateRolePermissionsCache(ctx, roleID)
	return nil
}
