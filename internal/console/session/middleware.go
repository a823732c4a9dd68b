package session

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crm-console/internal/console/notify"
	"crm-console/pkg/api"
	apperrors "crm-console/pkg/errors"
)

const (
	HeaderName = "X-Console-Session"
	CookieName = "console_session"

	contextKey = "console_session"

	RedirectLogin          = "/login"
	RedirectChangePassword = "/change-password"
)

// IDFromRequest: заголовок важнее cookie.
func IDFromRequest(c echo.Context) string {
	if id := strings.TrimSpace(c.Request().Header.Get(HeaderName)); id != "" {
		return id
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func FromContext(c echo.Context) *Session {
	sess, _ := c.Get(contextKey).(*Session)
	return sess
}

// Middleware пускает только запросы с живой сессией. Пока пароль не сменён,
// доступны лишь маршруты из allowWhileMustChange. expired вызывается с
// идентификатором, который пришёл в запросе, но сессии под ним уже нет.
func Middleware(store *Store, logger *zap.Logger, expired func(id string), allowWhileMustChange ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowWhileMustChange))
	for _, p := range allowWhileMustChange {
		allowed[p] = struct{}{}
	}
	logger = logger.Named("session-mw")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := IDFromRequest(c)
			sess, err := store.Get(c.Request().Context(), id)
			if err != nil {
				if !errors.Is(err, apperrors.ErrSessionNotFound) {
					logger.Error("Хранилище сессий недоступно", zap.Error(err))
					return api.ErrorResponse(c, err, logger)
				}
				if id != "" && expired != nil {
					expired(id)
				}
				return redirect(c, http.StatusUnauthorized, "Session expired, please log in again", RedirectLogin)
			}

			if sess.MustChangePassword {
				if _, ok := allowed[c.Path()]; !ok {
					return redirect(c, http.StatusForbidden, "Please change your password first", RedirectChangePassword)
				}
			}

			c.Set(contextKey, sess)
			c.SetRequest(c.Request().WithContext(notify.WithSessionID(c.Request().Context(), sess.ID)))
			return next(c)
		}
	}
}

func redirect(c echo.Context, code int, msg, page string) error {
	return c.JSON(code, api.Response{Status: api.StatusError, Msg: msg, Page: &page})
}

// SetCookie выдаёт cookie сессии браузерному клиенту.
func SetCookie(c echo.Context, sess *Session) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
}
