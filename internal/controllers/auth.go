package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crm-console/internal/dto"
	"crm-console/internal/services"
	"crm-console/pkg/api"
)

// ChangePasswordPage - значение поля page в ответе логина, когда пароль нужно сменить.
const ChangePasswordPage = "change-password"

type AuthController struct {
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

func (c *AuthController) Login(ctx echo.Context) error {
	payload, err := bindInput[dto.LoginDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.authService.Login(ctx.Request().Context(), payload)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	resp := api.Response{
		Status: api.StatusSuccess,
		Msg:    "Login successful",
		Data:   dto.LoginResponseDTO{Token: res.Token},
	}
	if res.MustChangePassword {
		page := ChangePasswordPage
		resp.Page = &page
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (c *AuthController) ChangePassword(ctx echo.Context) error {
	payload, err := bindInput[dto.ChangePasswordDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.authService.ChangePassword(ctx.Request().Context(), payload); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return ok(ctx, "Password changed successfully")
}

func (c *AuthController) SetDefaultPassword(ctx echo.Context) error {
	payload, err := bindInput[dto.SetDefaultPasswordDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	password, err := c.authService.SetDefaultPassword(ctx.Request().Context(), payload.UserID)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, api.Response{
		Status:          api.StatusSuccess,
		Msg:             "Default password set",
		DefaultPassword: password,
	})
}
