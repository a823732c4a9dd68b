package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crm-console/internal/controllers"
	"crm-console/internal/repositories"
	"crm-console/internal/services"
	"crm-console/pkg/config"
	"crm-console/pkg/middleware"
	"crm-console/pkg/service"
)

type Loggers struct {
	Main *zap.Logger
	Auth *zap.Logger
	Lead *zap.Logger
	User *zap.Logger
}

// Controllers - все контроллеры справочного API.
type Controllers struct {
	Auth       *controllers.AuthController
	Lead       *controllers.LeadController
	User       *controllers.UserController
	Role       *controllers.RoleController
	Permission *controllers.PermissionController
	Report     *controllers.ReportController
}

// InitRouter собирает репозитории, сервисы и контроллеры и регистрирует маршруты.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtSvc service.JWTService,
	loggers *Loggers,
	cfg *config.Config,
) {
	loggers.Main.Info("InitRouter: начало создания маршрутов")

	// --- 1. РЕПОЗИТОРИИ ---
	txManager := repositories.NewTxManager(dbConn)
	userRepo := repositories.NewUserRepository(dbConn, loggers.User)
	roleRepo := repositories.NewRoleRepository(dbConn, loggers.Main)
	permissionRepo := repositories.NewPermissionRepository(dbConn, loggers.Main)
	rpRepo := repositories.NewRolePermissionRepository(dbConn)
	leadRepo := repositories.NewLeadRepository(dbConn, loggers.Lead)
	statusRepo := repositories.NewLeadStatusRepository(dbConn)
	historyRepo := repositories.NewLeadStatusHistoryRepository(dbConn, loggers.Lead)
	reportRepo := repositories.NewReportRepository(dbConn)

	// --- 2. СЕРВИСЫ ---
	authPermissionService := services.NewAuthPermissionService(permissionRepo, cacheRepo, loggers.Auth, cfg.Auth.PermissionsCacheTTL)
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, loggers.Auth, &cfg.Auth)
	leadService := services.NewLeadService(txManager, leadRepo, statusRepo, historyRepo, userRepo, loggers.Lead)
	userService := services.NewUserService(userRepo, roleRepo, loggers.User)
	roleService := services.NewRoleService(roleRepo, permissionRepo, rpRepo, authPermissionService, loggers.Main)
	permissionService := services.NewPermissionService(permissionRepo, rpRepo, authPermissionService, loggers.Main)
	reportService := services.NewReportService(reportRepo, loggers.Main)

	// --- 3. КОНТРОЛЛЕРЫ ---
	ctrls := Controllers{
		Auth:       controllers.NewAuthController(authService, loggers.Auth),
		Lead:       controllers.NewLeadController(leadService, loggers.Lead),
		User:       controllers.NewUserController(userService, loggers.User),
		Role:       controllers.NewRoleController(roleService, loggers.Main),
		Permission: controllers.NewPermissionController(permissionService, loggers.Main),
		Report:     controllers.NewReportController(reportService, loggers.Main),
	}

	authMW := middleware.NewAuthMiddleware(jwtSvc, authPermissionService, loggers.Auth)
	Register(e, ctrls, authMW)

	loggers.Main.Info("InitRouter: создание маршрутов завершено")
}

// Register вешает маршруты на корень: путь маршрута совпадает с permission_Route_Path.
func Register(e *echo.Echo, ctrls Controllers, authMW *middleware.AuthMiddleware) {
	secureGroup := e.Group("", authMW.Auth)

	runAuthRouter(e, secureGroup, ctrls.Auth, authMW)
	runLeadRouter(secureGroup, ctrls.Lead, ctrls.Report, authMW)
	runUserRouter(secureGroup, ctrls.User, authMW)
	runRoleRouter(secureGroup, ctrls.Role, authMW)
	runPermissionRouter(secureGroup, ctrls.Permission, authMW)
}
