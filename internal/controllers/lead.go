package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crm-console/internal/dto"
	"crm-console/internal/services"
	"crm-console/pkg/api"
)

type LeadController struct {
	leadService services.LeadServiceInterface
	logger      *zap.Logger
}

func NewLeadController(leadService services.LeadServiceInterface, logger *zap.Logger) *LeadController {
	return &LeadController{leadService: leadService, logger: logger}
}

func (c *LeadController) List(ctx echo.Context) error {
	payload, err := bindInput[dto.LeadListDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.leadService.List(ctx.Request().Context(), payload.FilterData)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessList(ctx, "Successfully", res.Items, res.Total, res.Page, res.Limit)
}

func (c *LeadController) Assigned(ctx echo.Context) error {
	payload, err := bindInput[dto.AssignedListDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.leadService.Assigned(ctx.Request().Context(), payload)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessList(ctx, "Successfully", res.Items, res.Total, res.Page, res.Limit)
}

func (c *LeadController) Get(ctx echo.Context) error {
	payload, err := bindInput[dto.LeadIDDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	lead, err := c.leadService.Get(ctx.Request().Context(), payload.LeadID)
	return detail(ctx, lead, err, c.logger)
}

func (c *LeadController) Create(ctx echo.Context) error {
	payload, err := bindInput[dto.CreateLeadDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	id, err := c.leadService.Create(ctx.Request().Context(), payload.FormData)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.Success(ctx, http.StatusOK, "Lead created successfully", map[string]int{"lead_Id": id})
}

// Update: с lead_status_Id это смена статуса с комментарием, иначе правка формы.
func (c *LeadController) Update(ctx echo.Context) error {
	payload, err := bindInput[dto.UpdateLeadDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	reqCtx := ctx.Request().Context()

	if payload.IsStatusChange() {
		err = c.leadService.ChangeStatus(reqCtx, dto.StatusChangeDTO{
			LeadID:   payload.LeadID,
			StatusID: payload.StatusID,
			Comment:  payload.Comment,
		})
		if err != nil {
			return api.ErrorResponse(ctx, err, c.logger)
		}
		return ok(ctx, "Lead status updated successfully")
	}

	if err := ctx.Validate(&payload.LeadFormDTO); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.leadService.Update(reqCtx, payload.LeadID, payload.LeadFormDTO); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return ok(ctx, "Lead updated successfully")
}

func (c *LeadController) Delete(ctx echo.Context) error {
	payload, err := bindInput[dto.LeadIDDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.leadService.Delete(ctx.Request().Context(), payload.LeadID); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return ok(ctx, "Lead deleted successfully")
}

func (c *LeadController) Statuses(ctx echo.Context) error {
	statuses, err := c.leadService.Statuses(ctx.Request().Context())
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.Success(ctx, http.StatusOK, "Successfully", statuses)
}
