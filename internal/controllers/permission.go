package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crm-console/internal/dto"
	"crm-console/internal/services"
	"crm-console/pkg/api"
)

type PermissionController struct {
	permissionService services.PermissionServiceInterface
	logger            *zap.Logger
}

func NewPermissionController(permissionService services.PermissionServiceInterface, logger *zap.Logger) *PermissionController {
	return &PermissionController{permissionService: permissionService, logger: logger}
}

func (c *PermissionController) List(ctx echo.Context) error {
	payload, err := bindInput[dto.PageFilterDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.permissionService.List(ctx.Request().Context(), payload.FilterData)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessList(ctx, "Successfully", res.Items, res.Total, res.Page, res.Limit)
}

func (c *PermissionController) Get(ctx echo.Context) error {
	payload, err := bindInput[dto.PermissionIDDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	p, err := c.permissionService.Get(ctx.Request().Context(), payload.PermissionID)
	return detail(ctx, p, err, c.logger)
}

func (c *PermissionController) Create(ctx echo.Context) error {
	payload, err := bindInput[dto.PermissionFormDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	id, err := c.permissionService.Create(ctx.Request().Context(), payload)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.Success(ctx, http.StatusOK, "Permission created successfully", map[string]int{"permission_Id": id})
}

func (c *PermissionController) Update(ctx echo.Context) error {
	payload, err := bindInput[dto.UpdatePermissionDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.permissionService.Update(ctx.Request().Context(), payload.PermissionID, payload.PermissionFormDTO); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return ok(ctx, "Permission updated successfully")
}

func (c *PermissionController) Delete(ctx echo.Context) error {
	payload, err := bindInput[dto.PermissionIDDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.permissionService.Delete(ctx.Request().Context(), payload.PermissionID); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return ok(ctx, "Permission deleted successfully")
}
