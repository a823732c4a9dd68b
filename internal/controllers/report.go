package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crm-console/internal/dto"
	"crm-console/internal/services"
	"crm-console/pkg/api"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// Sales: отчёт отдаёт число страниц в pagination, а не в корне конверта.
func (c *ReportController) Sales(ctx echo.Context) error {
	payload, err := bindInput[dto.ReportRequestDTO](ctx, c.logger)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	report, page, err := c.reportService.AgentReport(ctx.Request().Context(), payload)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, api.Response{
		Status: api.StatusSuccess,
		Msg:    "Successfully",
		Data:   report,
		Pagination: &api.PaginationMeta{
			TotalPages: api.TotalPages(page.Total, page.Limit),
			Page:       page.Page,
			Limit:      page.Limit,
			TotalCount: page.Total,
		},
	})
}
