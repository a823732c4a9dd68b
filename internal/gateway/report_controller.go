package gateway

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crm-console/internal/console/export"
	"crm-console/internal/console/screens"
	"crm-console/pkg/api"
)

// ReportController - отчёт по агентам и фильтры назначенных лидов.
type ReportController struct {
	base
}

func NewReportController(manager *screens.Manager, logger *zap.Logger) *ReportController {
	return &ReportController{base: base{manager: manager, logger: logger.Named("report-ctrl")}}
}

// Export отдаёт текущую страницу отчёта файлом xlsx.
func (ctrl *ReportController) Export(c echo.Context) error {
	w, err := ctrl.workspace(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	report, err := w.Report(c.Request().Context())
	if err != nil {
		return ctrl.fail(c, err)
	}
	data, fileName, err := report.Export()
	if err != nil {
		ctrl.logger.Error("Не удалось сформировать xlsx отчёта", zap.Error(err))
		return ctrl.fail(c, err)
	}
	c.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	return c.Blob(http.StatusOK, export.ReportContentType, data)
}

// AgentOptions - варианты для фильтров исполнителя и автора.
func (ctrl *ReportController) AgentOptions(c echo.Context) error {
	w, err := ctrl.workspace(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	assigned, err := w.Assigned(c.Request().Context())
	if err != nil {
		return ctrl.fail(c, err)
	}
	opts, err := assigned.Options(c.Request().Context(), c.QueryParam("role"))
	if err != nil {
		return ctrl.fail(c, err)
	}
	return api.Success(c, http.StatusOK, "", opts)
}
