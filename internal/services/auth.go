package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"crm-console/internal/dto"
	"crm-console/internal/repositories"
	"crm-console/pkg/config"
	apperrors "crm-console/pkg/errors"
	"crm-console/pkg/service"
	"crm-console/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResult, error)
	ChangePassword(ctx context.Context, payload dto.ChangePasswordDTO) error
	// SetDefaultPassword выдаёт пользователю временный пароль и требует его смены при входе.
	SetDefaultPassword(ctx context.Context, userID int) (string, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
	cfg        *config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		logger:     logger,
		cfg:        cfg,
	}
}

var errInvalidCredentials = apperrors.NewHttpError(http.StatusUnauthorized, "Invalid credentials", apperrors.ErrInvalidCredentials, nil)

func attemptsKey(email string) string {
	return fmt.Sprintf("login_attempts:%s", strings.ToLower(strings.TrimSpace(email)))
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResult, error) {
	logger := s.logger.With(zap.String("email", payload.Email))
	key := attemptsKey(payload.Email)

	attemptsStr, _ := s.cacheRepo.Get(ctx, key)
	if attempts, _ := strconv.Atoi(attemptsStr); attempts >= s.cfg.MaxLoginAttempts {
		logger.Warn("Слишком много попыток входа")
		return nil, apperrors.NewHttpError(
			http.StatusTooManyRequests,
			fmt.Sprintf("Too many login attempts. Try again in %.0f minutes.", s.cfg.LockoutDuration.Minutes()),
			nil,
			nil,
		)
	}

	user, err := s.userRepo.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.registerFailure(ctx, key)
			logger.Info("Вход с неизвестным email")
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}
	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.registerFailure(ctx, key)
		logger.Info("Неверный пароль", zap.Int("userID", user.ID))
		return nil, errInvalidCredentials
	}
	_ = s.cacheRepo.Del(ctx, key)

	token, err := s.jwtService.GenerateToken(user.ID, user.RoleID, user.RoleName)
	if err != nil {
		return nil, fmt.Errorf("не удалось выпустить токен: %w", err)
	}
	logger.Info("Пользователь вошёл", zap.Int("userID", user.ID), zap.Bool("mustChangePassword", user.MustChangePassword))
	return &dto.LoginResult{Token: token, MustChangePassword: user.MustChangePassword}, nil
}

// registerFailure считает неудачи; окно блокировки отсчитывается от первой.
func (s *AuthService) registerFailure(ctx context.Context, key string) {
	n, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		s.logger.Error("Не удалось учесть неудачную попытку входа", zap.Error(err))
		return
	}
	if n == 1 {
		_, _ = s.cacheRepo.Expire(ctx, key, s.cfg.LockoutDuration)
	}
}

func (s *AuthService) ChangePassword(ctx context.Context, payload dto.ChangePasswordDTO) error {
	userID, err := actorID(ctx)
	if err != nil {
		return err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := utils.ComparePasswords(user.Password, payload.OldPassword); err != nil {
		return fieldError("oldPassword", "Current password is incorrect")
	}

	hash, err := utils.HashPassword(payload.NewPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash, false); err != nil {
		return err
	}
	s.logger.Info("Пароль изменён", zap.Int("userID", userID))
	return nil
}

func (s *AuthService) SetDefaultPassword(ctx context.Context, userID int) (string, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return "", err
	}
	password, err := utils.GenerateDefaultPassword()
	if err != nil {
		return "", err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return "", err
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash, true); err != nil {
		return "", err
	}

	actor, _ := actorID(ctx)
	s.logger.Info("Пароль сброшен на временный", zap.Int("userID", userID), zap.Int("actorID", actor))
	return password, nil
}
