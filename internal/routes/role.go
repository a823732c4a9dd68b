package routes

import (
	"github.com/labstack/echo/v4"

	"crm-console/internal/controllers"
	"crm-console/pkg/middleware"
)

func runRoleRouter(secureGroup *echo.Group, ctrl *controllers.RoleController, authMW *middleware.AuthMiddleware) {
	secureGroup.POST("/user/roles", ctrl.List, authMW.Authorize)
	secureGroup.POST("/user/role-by-id", ctrl.Get, authMW.Authorize)
	secureGroup.POST("/user/create-role", ctrl.Create, authMW.Authorize)
	secureGroup.POST("/user/update-role", ctrl.Update, authMW.Authorize)
	secureGroup.POST("/user/delete-role", ctrl.Delete, authMW.Authorize)

	secureGroup.POST("/user/role-permission", ctrl.Permissions, authMW.Authorize)
	secureGroup.POST("/user/add-role-permission", ctrl.AddPermission, authMW.Authorize)
	secureGroup.POST("/user/delete-role-permission", ctrl.RemovePermission, authMW.Authorize)
}
