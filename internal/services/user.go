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
	"crm-console/pkg/utils"
)

type UserServiceInterface interface {
	List(ctx context.Context, page dto.PageDTO) (*dto.ListResult[dto.UserDTO], error)
	Get(ctx context.Context, id int) (*dto.UserDTO, error)
	Create(ctx context.Context, form dto.UserFormDTO) (int, error)
	Update(ctx context.Context, payload dto.UpdateUserDTO) error
	Delete(ctx context.Context, id int) error
	// AgentOptions - пользователи с ролью "Agent", "Admin" или обеими ("Both").
	AgentOptions(ctx context.Context, role string) ([]dto.AgentOptionDTO, error)
}

type UserService struct {
	userRepo repositories.UserRepositoryInterface
	roleRepo repositories.RoleRepositoryInterface
	logger   *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	roleRepo repositories.RoleRepositoryInterface,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{userRepo: userRepo, roleRepo: roleRepo, logger: logger}
}

func userToDTO(u *entities.User) dto.UserDTO {
	return dto.UserDTO{ID: u.ID, Name: u.Name, Email: u.Email, RoleID: u.RoleID, RoleName: u.RoleName}
}

func (s *UserService) List(ctx context.Context, page dto.PageDTO) (*dto.ListResult[dto.UserDTO], error) {
	filter := page.ToFilter()
	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Не удалось получить список пользователей", zap.Error(err))
		return nil, err
	}
	items := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		items = append(items, userToDTO(&users[i]))
	}
	return &dto.ListResult[dto.UserDTO]{Items: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *UserService) Get(ctx context.Context, id int) (*dto.UserDTO, error) {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := userToDTO(u)
	return &out, nil
}

func (s *UserService) checkRole(ctx context.Context, roleID int) error {
	if _, err := s.roleRepo.FindByID(ctx, roleID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fieldError("roleId", "Role does not exist")
		}
		return err
	}
	return nil
}

func emailTaken(err error) error {
	if errors.Is(err, apperrors.ErrAlreadyExists) {
		return fieldError("userEmail", "Email is already taken")
	}
	return err
}

func (s *UserService) Create(ctx context.Context, form dto.UserFormDTO) (int, error) {
	if err := s.checkRole(ctx, form.RoleID); err != nil {
		return 0, err
	}
	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		return 0, err
	}
	id, err := s.userRepo.Create(ctx, &entities.User{
		Name:     strings.TrimSpace(form.UserName),
		Email:    strings.ToLower(strings.TrimSpace(form.UserEmail)),
		Password: hash,
		RoleID:   form.RoleID,
	})
	if err != nil {
		return 0, emailTaken(err)
	}
	s.logger.Info("Пользователь создан", zap.Int("userID", id))
	return id, nil
}

func (s *UserService) Update(ctx context.Context, payload dto.UpdateUserDTO) error {
	if err := s.checkRole(ctx, payload.RoleID); err != nil {
		return err
	}
	err := s.userRepo.Update(ctx, &entities.User{
		ID:     payload.UserID,
		Name:   strings.TrimSpace(payload.UserName),
		Email:  strings.ToLower(strings.TrimSpace(payload.UserEmail)),
		RoleID: payload.RoleID,
	})
	return emailTaken(err)
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	actor, err := actorID(ctx)
	if err != nil {
		return err
	}
	if actor == id {
		return apperrors.NewApplicationError("You cannot delete your own account", nil)
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Пользователь удалён", zap.Int("userID", id), zap.Int("actorID", actor))
	return nil
}

func (s *UserService) AgentOptions(ctx context.Context, role string) ([]dto.AgentOptionDTO, error) {
	roles := []string{role}
	if role == "Both" {
		roles = []string{entities.RoleAgent, entities.RoleAdmin}
	}
	users, err := s.userRepo.ListByRoles(ctx, roles)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AgentOptionDTO, 0, len(users))
	for _, u := range users {
		out = append(out, dto.AgentOptionDTO{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.RoleName})
	}
	return out, nil
}

