package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crm-console/internal/dto"
	"crm-console/internal/services"
	"crm-console/pkg/api"
)

type UserController struct {
	userService services.UserServiceInterface
	logger      *zap.Logger
}

func NewUserController(userService services.UserServiceInterface, logger *zap.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

func (c *UserController) List(ctx echo.Context) error {
	payload, err := bindInput[dto.PageFilterDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.userService.List(ctx.Request().Context(), payload.FilterData)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessList(ctx, "Successfully", res.Items, res.Total, res.Page, res.Limit)
}

func (c *UserController) Get(ctx echo.Context) error {
	payload, err := bindInput[dto.UserIDDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	user, err := c.userService.Get(ctx.Request().Context(), payload.UserID)
	return detail(ctx, user, err, c.logger)
}

func (c *UserController) Create(ctx echo.Context) error {
	payload, err := bindInput[dto.CreateUserDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	id, err := c.userService.Create(ctx.Request().Context(), payload.FormData)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.Success(ctx, http.StatusOK, "User created successfully", map[string]int{"user_Id": id})
}

func (c *UserController) Update(ctx echo.Context) error {
	payload, err := bindInput[dto.UpdateUserDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.userService.Update(ctx.Request().Context(), payload); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return ok(ctx, "User updated successfully")
}

func (c *UserController) Delete(ctx echo.Context) error {
	payload, err := bindInput[dto.DeleteUserDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.userService.Delete(ctx.Request().Context(), payload.UserID); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return ok(ctx, "User deleted successfully")
}

func (c *UserController) AgentList(ctx echo.Context) error {
	payload, err := bindInput[dto.AgentListDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	options, err := c.userService.AgentOptions(ctx.Request().Context(), payload.Role)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.Success(ctx, http.StatusOK, "Successfully", options)
}
