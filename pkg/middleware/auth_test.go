package middleware

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

	"crm-console/pkg/contextkeys"
	apperrors "crm-console/pkg/errors"
	"crm-console/pkg/service"
)

type allowPaths map[string]bool

func (a allowPaths) CanAccess(_ context.Context, _ int, _ string, path string) (bool, error) {
	return a[path], nil
}

func TestExtractToken(t *testing.T) {
	tok, err := ExtractToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	tok, err = ExtractToken("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = ExtractToken("")
	assert.ErrorIs(t, err, apperrors.ErrEmptyAuthHeader)

	_, err = ExtractToken("Basic a b")
	assert.ErrorIs(t, err, apperrors.ErrInvalidAuthHeader)
}

func TestAuthMiddleware_AuthAndAuthorize(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", time.Hour, zap.NewNop())
	mw := NewAuthMiddleware(jwtSvc, allowPaths{"/sales/lead-list": true}, zap.NewNop())
	token, err := jwtSvc.GenerateToken(7, 2, "Agent")
	require.NoError(t, err)

	e := echo.New()
	var seenUser int
	handler := func(c echo.Context) error {
		seenUser, _ = c.Request().Context().Value(contextkeys.UserIDKey).(int)
		return c.NoContent(http.StatusOK)
	}
	e.POST("/sales/lead-list", handler, mw.Auth, mw.Authorize)
	e.POST("/user/userlist", handler, mw.Auth, mw.Authorize)

	req := httptest.NewRequest(http.MethodPost, "/sales/lead-list", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, seenUser)

	req = httptest.NewRequest(http.MethodPost, "/user/userlist", nil)
	req.Header.Set(echo.HeaderAuthorization, token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/sales/lead-list", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
