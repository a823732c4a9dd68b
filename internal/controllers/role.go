package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crm-console/internal/dto"
	"crm-console/internal/services"
	"crm-console/pkg/api"
)

type RoleController struct {
	roleService services.RoleServiceInterface
	logger      *zap.Logger
}

func NewRoleController(roleService services.RoleServiceInterface, logger *zap.Logger) *RoleController {
	return &RoleController{roleService: roleService, logger: logger}
}

func (c *RoleController) List(ctx echo.Context) error {
	payload, err := bindInput[dto.PageFilterDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.roleService.List(ctx.Request().Context(), payload.FilterData)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessList(ctx, "Successfully", res.Items, res.Total, res.Page, res.Limit)
}

func (c *RoleController) Get(ctx echo.Context) error {
	payload, err := bindInput[dto.RoleIDDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	role, err := c.roleService.Get(ctx.Request().Context(), payload.RoleID)
	return detail(ctx, role, err, c.logger)
}

func (c *RoleController) Create(ctx echo.Context) error {
	payload, err := bindInput[dto.CreateRoleDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	id, err := c.roleService.Create(ctx.Request().Context(), payload.FormData.RoleName)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.Success(ctx, http.StatusOK, "Role created successfully", map[string]int{"role_Id": id})
}

func (c *RoleController) Update(ctx echo.Context) error {
	payload, err := bindInput[dto.UpdateRoleDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.roleService.Update(ctx.Request().Context(), payload.RoleID, payload.RoleName); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return ok(ctx, "Role updated successfully")
}

func (c *RoleController) Delete(ctx echo.Context) error {
	payload, err := bindInput[dto.RoleRefDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.roleService.Delete(ctx.Request().Context(), payload.RoleID); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return ok(ctx, "Role deleted successfully")
}

func (c *RoleController) Permissions(ctx echo.Context) error {
	payload, err := bindInput[dto.RoleRefDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	list, err := c.roleService.Permissions(ctx.Request().Context(), payload.RoleID)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.Success(ctx, http.StatusOK, "Successfully", list)
}

func (c *RoleController) AddPermission(ctx echo.Context) error {
	payload, err := bindInput[dto.AddRolePermissionDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	form := payload.FormData
	if err := c.roleService.AddPermission(ctx.Request().Context(), form.RoleID, form.PermissionID); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return ok(ctx, "Permission added to role")
}

func (c *RoleController) RemovePermission(ctx echo.Context) error {
	payload, err := bindInput[dto.DeleteRolePermissionDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.roleService.RemovePermission(ctx.Request().Context(), payload.RoleID, payload.RolePermissionID); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return ok(ctx, "Permission removed from role")
}
