package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crm-console/internal/console/notify"
	"crm-console/internal/repositories"
	apperrors "crm-console/pkg/errors"
	"crm-console/pkg/service"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(repositories.NewMemoryCacheRepository(), 24*time.Hour, zap.NewNop())
}

func TestStore_CreateFromJWT(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", time.Hour, zap.NewNop())
	token, err := jwtSvc.GenerateToken(42, 2, "Agent")
	require.NoError(t, err)

	store := newStore(t)
	sess, err := store.Create(context.Background(), token, true)
	require.NoError(t, err)

	assert.Equal(t, 42, sess.UserID)
	assert.Equal(t, "Agent", sess.RoleName)
	assert.True(t, sess.MustChangePassword)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Minute)

	got, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, token, got.BearerToken())

	got, err = store.PasswordChanged(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.False(t, got.MustChangePassword)

	require.NoError(t, store.Delete(context.Background(), sess.ID))
	_, err = store.Get(context.Background(), sess.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestStore_OpaqueTokenUsesSessionTTL(t *testing.T) {
	store := newStore(t)
	sess, err := store.Create(context.Background(), "opaque-token", false)
	require.NoError(t, err)
	assert.Zero(t, sess.UserID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), sess.ExpiresAt, time.Minute)
}

func TestStore_ExpiredSessionIsGone(t *testing.T) {
	store := newStore(t)
	sess, err := store.Create(context.Background(), "opaque-token", false)
	require.NoError(t, err)

	store.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	_, err = store.Get(context.Background(), sess.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestMiddleware(t *testing.T) {
	store := newStore(t)
	e := echo.New()
	var expired []string
	mw := Middleware(store, zap.NewNop(), func(id string) { expired = append(expired, id) }, "/auth/change-password")

	handler := func(c echo.Context) error {
		assert.Equal(t, FromContext(c).ID, notify.SessionID(c.Request().Context()))
		return c.NoContent(http.StatusNoContent)
	}

	serve := func(path, sessionID string, viaCookie bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if sessionID != "" {
			if viaCookie {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: sessionID})
			} else {
				req.Header.Set(HeaderName, sessionID)
			}
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath(path)
		require.NoError(t, mw(handler)(c))
		return rec
	}

	t.Run("без сессии", func(t *testing.T) {
		rec := serve("/screens/leads", "", false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"page":"/login"`)
		assert.Empty(t, expired, "пустой идентификатор не считается истёкшей сессией")
	})

	t.Run("неизвестная сессия", func(t *testing.T) {
		rec := serve("/screens/leads", "gone-session", true)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, []string{"gone-session"}, expired)
	})

	forced, err := store.Create(context.Background(), "t1", true)
	require.NoError(t, err)

	t.Run("смена пароля обязательна", func(t *testing.T) {
		rec := serve("/screens/leads", forced.ID, false)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), `"page":"/change-password"`)

		rec = serve("/auth/change-password", forced.ID, true)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("обычная сессия", func(t *testing.T) {
		ok, err := store.Create(context.Background(), "t2", false)
		require.NoError(t, err)
		rec := serve("/screens/leads", ok.ID, true)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
