package gateway

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crm-console/internal/console/screens"
	"crm-console/internal/console/session"
	"crm-console/internal/crmclient"
	"crm-console/pkg/api"
)

// AuthAPI - эндпоинты входа и смены пароля CRM.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (crmclient.LoginResult, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword, confirm string) (string, error)
}

// AuthClientFactory - клиент, подписанный токеном сессии (для смены пароля).
type AuthClientFactory func(cred crmclient.Credential) AuthAPI

type AuthController struct {
	base
	auth    AuthAPI
	authFor AuthClientFactory
	store   *session.Store
}

func NewAuthController(auth AuthAPI, authFor AuthClientFactory, store *session.Store, manager *screens.Manager, logger *zap.Logger) *AuthController {
	return &AuthController{
		base:    base{manager: manager, logger: logger.Named("auth-ctrl")},
		auth:    auth,
		authFor: authFor,
		store:   store,
	}
}

type loginResponse struct {
	SessionID          string `json:"sessionId"`
	MustChangePassword bool   `json:"mustChangePassword"`
	Redirect           string `json:"redirect"`
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var dto LoginDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}

	reqCtx := c.Request().Context()
	res, err := ctrl.auth.Login(reqCtx, dto.Email, dto.Password)
	if err != nil {
		ctrl.logger.Warn("Вход не выполнен", zap.String("email", dto.Email), zap.Error(err))
		return ctrl.fail(c, err)
	}

	sess, err := ctrl.store.Create(reqCtx, res.Token, res.MustChangePassword)
	if err != nil {
		return ctrl.fail(c, err)
	}
	session.SetCookie(c, sess)

	redirect := "/" + screens.NameLeads
	if sess.MustChangePassword {
		redirect = session.RedirectChangePassword
	}
	return api.Success(c, http.StatusOK, "Login successful", loginResponse{
		SessionID:          sess.ID,
		MustChangePassword: sess.MustChangePassword,
		Redirect:           redirect,
	})
}

func (ctrl *AuthController) Logout(c echo.Context) error {
	sess := session.FromContext(c)
	if sess != nil {
		ctrl.manager.Drop(sess.ID)
		if err := ctrl.store.Delete(c.Request().Context(), sess.ID); err != nil {
			ctrl.logger.Error("Не удалось удалить сессию", zap.String("session", sess.ID), zap.Error(err))
		}
	}
	session.ClearCookie(c)
	return api.Success(c, http.StatusOK, "Logged out", map[string]string{"redirect": session.RedirectLogin})
}

func (ctrl *AuthController) ChangePassword(c echo.Context) error {
	var dto ChangePasswordDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}
	sess := session.FromContext(c)

	reqCtx := c.Request().Context()
	msg, err := ctrl.authFor(sess).ChangePassword(reqCtx, dto.OldPassword, dto.NewPassword, dto.ConfirmPassword)
	if err != nil {
		return ctrl.fail(c, err)
	}
	if _, err := ctrl.store.PasswordChanged(reqCtx, sess.ID); err != nil {
		return ctrl.fail(c, err)
	}
	if msg == "" {
		msg = "Password changed successfully"
	}
	return api.Success(c, http.StatusOK, msg, map[string]string{"redirect": "/" + screens.NameLeads})
}
