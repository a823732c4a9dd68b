package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"crm-console/internal/dto"
	"crm-console/internal/entities"
	"crm-console/internal/repositories"
	apperrors "crm-console/pkg/errors"
)

type PermissionServiceInterface interface {
	List(ctx context.Context, page dto.PageDTO) (*dto.ListResult[dto.PermissionDTO], error)
	Get(ctx context.Context, id int) (*dto.PermissionDTO, error)
	Create(ctx context.Context, form dto.PermissionFormDTO) (int, error)
	Update(ctx context.Context, id int, form dto.PermissionFormDTO) error
	Delete(ctx context.Context, id int) error
}

type PermissionService struct {
	permissionRepo repositories.PermissionRepositoryInterface
	rpRepo         repositories.RolePermissionRepositoryInterface
	authPermission AuthPermissionServiceInterface
	logger         *zap.Logger
}

func NewPermissionService(
	permissionRepo repositories.PermissionRepositoryInterface,
	rpRepo repositories.RolePermissionRepositoryInterface,
	authPermission AuthPermissionServiceInterface,
	logger *zap.Logger,
) PermissionServiceInterface {
	return &PermissionService{
		permissionRepo: permissionRepo,
		rpRepo:         rpRepo,
		authPermission: authPermission,
		logger:         logger,
	}
}

func permissionToDTO(p *entities.Permission) dto.PermissionDTO {
	return dto.PermissionDTO{ID: p.ID, Name: p.Name, RoutePath: p.RoutePath}
}

func routeTaken(err error) error {
	if errors.Is(err, apperrors.ErrAlreadyExists) {
		return fieldError("permission_Route_Path", "Route path is already registered")
	}
	return err
}

func (s *PermissionService) List(ctx context.Context, page dto.PageDTO) (*dto.ListResult[dto.PermissionDTO], error) {
	filter := page.ToFilter()
	list, total, err := s.permissionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PermissionDTO, 0, len(list))
	for i := range list {
		items = append(items, permissionToDTO(&list[i]))
	}
	return &dto.ListResult[dto.PermissionDTO]{Items: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *PermissionService) Get(ctx context.Context, id int) (*dto.PermissionDTO, error) {
	p, err := s.permissionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := permissionToDTO(p)
	return &out, nil
}

func (s *PermissionService) Create(ctx context.Context, form dto.PermissionFormDTO) (int, error) {
	id, err := s.permissionRepo.Create(ctx, &entities.Permission{
		Name:      strings.TrimSpace(form.Name),
		RoutePath: strings.TrimSpace(form.RoutePath),
	})
	if err != nil {
		return 0, routeTaken(err)
	}
	s.logger.Info("Право создано", zap.Int("permissionID", id), zap.String("route", form.RoutePath))
	return id, nil
}

// Update и Delete сбрасывают кеш прав всех ролей, где право было привязано.
func (s *PermissionService) Update(ctx context.Context, id int, form dto.PermissionFormDTO) error {
	err := s.permissionRepo.Update(ctx, &entities.Permission{
		ID:        id,
		Name:      strings.TrimSpace(form.Name),
		RoutePath: strings.TrimSpace(form.RoutePath),
	})
	if err != nil {
		return routeTaken(err)
	}
	s.invalidateHolders(ctx, id)
	return nil
}

func (s *PermissionService) Delete(ctx context.Context, id int) error {
	roleIDs, err := s.rpRepo.RoleIDsByPermission(ctx, id)
	if err != nil {
		return err
	}
	if err := s.permissionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.authPermission.InvalidateRolePermissionsCache(ctx, roleIDs...)
	s.logger.Info("Право удалено", zap.Int("permissionID", id))
	return nil
}

func (s *PermissionService) invalidateHolders(ctx context.Context, permissionID int) {
	roleIDs, err := s.rpRepo.RoleIDsByPermission(ctx, permissionID)
	if err != nil {
		s.logger.Error("Не удалось получить роли права", zap.Int("permissionID", permissionID), zap.Error(err))
		return
	}
	s.authPermission.InvalidateRolePermissionsCache(ctx, roleIDs...)
}
