package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"crm-console/internal/repositories"
	"crm-console/internal/routes"
	"crm-console/migrations"
	"crm-console/pkg/api"
	"crm-console/pkg/config"
	"crm-console/pkg/customvalidator"
	"crm-console/pkg/database/postgresql"
	apperrors "crm-console/pkg/errors"
	applogger "crm-console/pkg/logger"
	appmw "crm-console/pkg/middleware"
	"crm-console/pkg/service"
)

func main() {
	cfg := config.New()

	port := flag.String("port", cfg.Server.Port, "порт CRM API")
	dsn := flag.String("database-url", cfg.Postgres.DSN, "строка подключения к PostgreSQL")
	migrate := flag.Bool("migrate", true, "применить миграции при старте")
	memoryCache := flag.Bool("memory-cache", false, "кеш прав и счётчики входа в памяти вместо Redis")
	flag.Parse()

	logger := applogger.NewLogger(cfg.Console.LogFile)
	defer func() { _ = logger.Sync() }()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("Паника при обработке запроса",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				_ = api.ErrorResponse(c, apperrors.NewHttpError(http.StatusInternalServerError, "Internal server error", err, nil), logger)
			}
			return err
		},
	}))
	e.Use(appmw.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Console.AllowedOrigins,
		AllowMethods: []string{http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	validation, err := customvalidator.New()
	if err != nil {
		logger.Fatal("Ошибка регистрации правил валидации", zap.Error(err))
	}
	e.Validator = customvalidator.NewEchoValidator(validation)

	ctx := context.Background()
	dbConn, err := postgresql.ConnectDB(ctx, *dsn, logger)
	if err != nil {
		logger.Fatal("Не удалось подключиться к PostgreSQL", zap.Error(err))
	}
	defer dbConn.Close()

	if *migrate {
		if err := migrations.Up(ctx, dbConn, logger); err != nil {
			logger.Fatal("Ошибка применения миграций", zap.Error(err))
		}
	}

	var cache repositories.CacheRepositoryInterface
	if *memoryCache {
		logger.Warn("Кеш хранится в памяти процесса")
		cache = repositories.NewMemoryCacheRepository()
	} else {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			logger.Fatal("Не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
		}
		cache = repositories.NewRedisCacheRepository(redisClient, "crmapi")
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, logger)

	routes.InitRouter(e, dbConn, cache, jwtSvc, &routes.Loggers{
		Main: logger,
		Auth: logger.Named("auth"),
		Lead: logger.Named("lead"),
		User: logger.Named("user"),
	}, cfg)

	go func() {
		logger.Info("CRM API запущен", zap.String("port", *port))
		if err := e.Start(":" + *port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера", zap.Error(err))
	}
	logger.Info("CRM API остановлен")
}
