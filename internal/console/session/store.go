// Package session keeps console sessions: the CRM bearer token issued at
// login and the forced-password-change flag, keyed by an opaque session id.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"crm-console/internal/repositories"
	apperrors "crm-console/pkg/errors"
	"crm-console/pkg/service"
)

const keyPrefix = "console:session:"

// Credential - то, чем crmclient подписывает запросы.
type Credential interface {
	BearerToken() string
}

type Session struct {
	ID                 string    `json:"id"`
	Token              string    `json:"token"`
	UserID             int       `json:"userId"`
	RoleName           string    `json:"roleName,omitempty"`
	MustChangePassword bool      `json:"mustChangePassword"`
	CreatedAt          time.Time `json:"createdAt"`
	ExpiresAt          time.Time `json:"expiresAt"`
}

func (s *Session) BearerToken() string { return s.Token }

func (s *Session) Expiry() time.Time { return s.ExpiresAt }

type Store struct {
	cache  repositories.CacheRepositoryInterface
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

func NewStore(cache repositories.CacheRepositoryInterface, ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{cache: cache, ttl: ttl, now: time.Now, logger: logger.Named("session")}
}

// Create открывает сессию для токена. Срок жизни не больше срока токена.
func (s *Store) Create(ctx context.Context, token string, mustChangePassword bool) (*Session, error) {
	now := s.now()
	sess := &Session{
		ID:                 uuid.NewString(),
		Token:              token,
		MustChangePassword: mustChangePassword,
		CreatedAt:          now,
		ExpiresAt:          now.Add(s.ttl),
	}

	if claims, err := service.InspectToken(token); err == nil {
		sess.UserID = claims.UserID
		sess.RoleName = claims.RoleName
		if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(sess.ExpiresAt) {
			sess.ExpiresAt = claims.ExpiresAt.Time
		}
	} else {
		s.logger.Debug("Токен не является JWT, используется TTL сессии", zap.Error(err))
	}

	if !sess.ExpiresAt.After(now) {
		return nil, apperrors.ErrTokenExpired
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	s.logger.Info("Сессия создана", zap.String("session", sess.ID), zap.Int("userID", sess.UserID))
	return sess, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, apperrors.ErrSessionNotFound
	}
	raw, err := s.cache.Get(ctx, keyPrefix+id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("ошибка чтения сессии: %w", err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		s.logger.Warn("Повреждённая сессия удалена", zap.String("session", id), zap.Error(err))
		_ = s.cache.Del(ctx, keyPrefix+id)
		return nil, apperrors.ErrSessionNotFound
	}
	if !sess.ExpiresAt.After(s.now()) {
		_ = s.cache.Del(ctx, keyPrefix+id)
		return nil, apperrors.ErrSessionNotFound
	}
	return &sess, nil
}

// PasswordChanged снимает флаг принудительной смены пароля.
func (s *Store) PasswordChanged(ctx context.Context, id string) (*Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.MustChangePassword = false
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.cache.Del(ctx, keyPrefix+id)
}

func (s *Store) save(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("ошибка сериализации сессии: %w", err)
	}
	ttl := sess.ExpiresAt.Sub(s.now())
	if err := s.cache.Set(ctx, keyPrefix+sess.ID, raw, ttl); err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}
	return nil
}
