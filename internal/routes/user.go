package routes

import (
	"github.com/labstack/echo/v4"

	"crm-console/internal/controllers"
	"crm-console/pkg/middleware"
)

func runUserRouter(secureGroup *echo.Group, ctrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	secureGroup.POST("/user/userlist", ctrl.List, authMW.Authorize)
	secureGroup.POST("/user/get-user-by-id", ctrl.Get, authMW.Authorize)
	secureGroup.POST("/user/create-user", ctrl.Create, authMW.Authorize)
	secureGroup.POST("/user/update-user", ctrl.Update, authMW.Authorize)
	secureGroup.POST("/user/delete-user", ctrl.Delete, authMW.Authorize)
	secureGroup.POST("/user/agent-list", ctrl.AgentList, authMW.Authorize)
}
