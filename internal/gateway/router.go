package gateway

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crm-console/internal/console/screens"
	"crm-console/internal/console/session"
	appwebsocket "crm-console/pkg/websocket"
)

const (
	pathLogin          = "/auth/login"
	pathLogout         = "/auth/logout"
	pathChangePassword = "/auth/change-password"
)

type Deps struct {
	Manager        *screens.Manager
	Store          *session.Store
	Auth           AuthAPI
	AuthFor        AuthClientFactory
	Hub            *appwebsocket.Hub
	AllowedOrigins []string
	Logger         *zap.Logger
}

func InitRouter(e *echo.Echo, d Deps) {
	d.Logger.Info("InitRouter: регистрация маршрутов консоли")

	authCtrl := NewAuthController(d.Auth, d.AuthFor, d.Store, d.Manager, d.Logger)
	screenCtrl := NewScreenController(d.Manager, d.Logger)
	leadsCtrl := NewLeadsController(d.Manager, d.Logger)
	usersCtrl := NewUsersController(d.Manager, d.Logger)
	rolesCtrl := NewRolesController(d.Manager, d.Logger)
	permsCtrl := NewPermissionsController(d.Manager, d.Logger)
	reportCtrl := NewReportController(d.Manager, d.Logger)
	wsCtrl := NewWebSocketController(d.Hub, d.AllowedOrigins, d.Logger)

	if d.Hub != nil {
		d.Manager.OnDrop(d.Hub.DropSession)
	}

	e.POST(pathLogin, authCtrl.Login)

	secure := e.Group("", session.Middleware(d.Store, d.Logger, d.Manager.Drop, pathLogout, pathChangePassword))
	secure.POST(pathLogout, authCtrl.Logout)
	secure.POST(pathChangePassword, authCtrl.ChangePassword)
	secure.GET("/ws", wsCtrl.ServeWs)

	runLeadsRouter(secure.Group("/screens/leads"), leadsCtrl)
	runUsersRouter(secure.Group("/screens/users"), usersCtrl)
	runRolesRouter(secure.Group("/screens/roles"), rolesCtrl)
	runPermissionsRouter(secure.Group("/screens/permissions"), permsCtrl)
	secure.GET("/screens/assigned/options", reportCtrl.AgentOptions)
	secure.GET("/screens/report/export", reportCtrl.Export)

	s := secure.Group("/screens/:screen")
	s.GET("", screenCtrl.Mount)
	s.DELETE("", screenCtrl.Unmount)
	s.POST("/search", screenCtrl.Search)
	s.POST("/status-filter", screenCtrl.StatusFilter)
	s.POST("/filter", screenCtrl.Filter)
	s.POST("/sort", screenCtrl.Sort)
	s.POST("/page", screenCtrl.Page)
	s.POST("/limit", screenCtrl.Limit)
	s.POST("/clear", screenCtrl.Clear)
	s.POST("/refresh", screenCtrl.Refresh)

	d.Logger.Info("InitRouter: маршруты консоли зарегистрированы")
}

func runLeadsRouter(g *echo.Group, ctrl *LeadsController) {
	g.POST("/form", ctrl.OpenForm)
	g.DELETE("/form", ctrl.CloseForm)
	g.POST("/records", ctrl.Create)
	g.PUT("/records/:id", ctrl.Update)
	g.DELETE("/records/:id", ctrl.Delete)
	g.GET("/records/:id/tracker", ctrl.Tracker)
	g.GET("/detail/:id", ctrl.OpenDetail)
	g.DELETE("/detail", ctrl.CloseDetail)
	g.POST("/detail/status", ctrl.ChangeStatus)
	g.GET("/statuses", ctrl.Statuses)
}

func runUsersRouter(g *echo.Group, ctrl *UsersController) {
	g.POST("/form", ctrl.OpenForm)
	g.DELETE("/form", ctrl.CloseForm)
	g.POST("/records", ctrl.Create)
	g.PUT("/records/:id", ctrl.Update)
	g.DELETE("/records/:id", ctrl.Delete)
	g.POST("/records/:id/reset-password", ctrl.ResetPassword)
	g.GET("/detail/:id", ctrl.OpenDetail)
	g.DELETE("/detail", ctrl.CloseDetail)
	g.GET("/role-options", ctrl.RoleOptions)
}

func runRolesRouter(g *echo.Group, ctrl *RolesController) {
	g.POST("/form", ctrl.OpenForm)
	g.DELETE("/form", ctrl.CloseForm)
	g.POST("/records", ctrl.Create)
	g.PUT("/records/:id", ctrl.Update)
	g.DELETE("/records/:id", ctrl.Delete)
	g.GET("/detail/:id", ctrl.OpenDetail)
	g.DELETE("/detail", ctrl.CloseDetail)
	g.POST("/detail/permissions", ctrl.AddPermission)
	g.DELETE("/detail/permissions/:permissionId", ctrl.RemovePermission)
	g.GET("/permission-options", ctrl.PermissionOptions)
}

func runPermissionsRouter(g *echo.Group, ctrl *PermissionsController) {
	g.POST("/form", ctrl.OpenForm)
	g.DELETE("/form", ctrl.CloseForm)
	g.POST("/records", ctrl.Create)
	g.PUT("/records/:id", ctrl.Update)
	g.DELETE("/records/:id", ctrl.Delete)
	g.GET("/detail/:id", ctrl.OpenDetail)
	g.DELETE("/detail", ctrl.CloseDetail)
}
