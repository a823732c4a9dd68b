package routes

import (
	"github.com/labstack/echo/v4"

	"crm-console/internal/controllers"
	"crm-console/pkg/middleware"
)

func runAuthRouter(e *echo.Echo, secureGroup *echo.Group, ctrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	e.POST("/auth/app/login", ctrl.Login)

	// свой пароль меняет любая роль, без отдельного права
	secureGroup.POST("/auth/app/change-password", ctrl.ChangePassword)
	secureGroup.POST("/auth/app/set-default-pwd", ctrl.SetDefaultPassword, authMW.Authorize)
}
