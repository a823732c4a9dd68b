package routes

import (
	"github.com/labstack/echo/v4"

	"crm-console/internal/controllers"
	"crm-console/pkg/middleware"
)

func runLeadRouter(secureGroup *echo.Group, ctrl *controllers.LeadController, reportCtrl *controllers.ReportController, authMW *middleware.AuthMiddleware) {
	secureGroup.POST("/sales/lead-status-list", ctrl.Statuses)

	secureGroup.POST("/sales/lead-list", ctrl.List, authMW.Authorize)
	secureGroup.POST("/sales/sales-lead/id", ctrl.Get, authMW.Authorize)
	secureGroup.POST("/sales/create-lead", ctrl.Create, authMW.Authorize)
	secureGroup.POST("/sales/update", ctrl.Update, authMW.Authorize)
	secureGroup.POST("/sales/delete", ctrl.Delete, authMW.Authorize)
	secureGroup.POST("/sales/admin/assigned-list", ctrl.Assigned, authMW.Authorize)
	secureGroup.POST("/sales/report", reportCtrl.Sales, authMW.Authorize)
}
