package routes

import (
	"github.com/labstack/echo/v4"

	"crm-console/internal/controllers"
	"crm-console/pkg/middleware"
)

func runPermissionRouter(secureGroup *echo.Group, ctrl *controllers.PermissionController, authMW *middleware.AuthMiddleware) {
	secureGroup.POST("/user/permissions", ctrl.List, authMW.Authorize)
	secureGroup.POST("/user/permision-by-id", ctrl.Get, authMW.Authorize)
	secureGroup.POST("/user/create-permission", ctrl.Create, authMW.Authorize)
	secureGroup.POST("/user/update-permission", ctrl.Update, authMW.Authorize)
	secureGroup.POST("/user/delete-permission", ctrl.Delete, authMW.Authorize)
}
