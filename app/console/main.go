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

	"crm-console/internal/console/notify"
	"crm-console/internal/console/screens"
	"crm-console/internal/console/session"
	"crm-console/internal/crmclient"
	"crm-console/internal/gateway"
	"crm-console/internal/listeners"
	"crm-console/internal/repositories"
	"crm-console/pkg/api"
	"crm-console/pkg/config"
	"crm-console/pkg/customvalidator"
	apperrors "crm-console/pkg/errors"
	"crm-console/pkg/eventbus"
	applogger "crm-console/pkg/logger"
	appmw "crm-console/pkg/middleware"
	appwebsocket "crm-console/pkg/websocket"
)

func main() {
	cfg := config.New()

	port := flag.String("port", cfg.Console.Port, "порт консоли")
	crmURL := flag.String("crm-url", cfg.CRM.BaseURL, "адрес CRM API")
	memorySessions := flag.Bool("memory-sessions", false, "хранить сессии в памяти процесса вместо Redis")
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
		AllowOrigins:     cfg.Console.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, session.HeaderName},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition", echo.HeaderXRequestID},
	}))

	validation, err := customvalidator.New()
	if err != nil {
		logger.Fatal("Ошибка регистрации правил валидации", zap.Error(err))
	}
	e.Validator = customvalidator.NewEchoValidator(validation)

	var cache repositories.CacheRepositoryInterface
	if *memorySessions {
		logger.Warn("Сессии хранятся в памяти процесса")
		cache = repositories.NewMemoryCacheRepository()
	} else {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logger.Fatal("Не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
		}
		cache = repositories.NewRedisCacheRepository(redisClient, "console")
	}

	hub := appwebsocket.NewHub(logger)
	go hub.Run()
	defer hub.Stop()

	bus := eventbus.New(logger)
	listeners.NewNotificationListener(hub, logger).Register(bus)

	client := crmclient.New(*crmURL, cfg.CRM.Timeout, logger)
	manager := screens.NewManager(screens.ClientFactory(client), notify.New(bus, logger), logger)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go manager.RunSweeper(sweepCtx, time.Minute)

	gateway.InitRouter(e, gateway.Deps{
		Manager:        manager,
		Store:          session.NewStore(cache, cfg.Console.SessionTTL, logger),
		Auth:           client,
		AuthFor:        func(cred crmclient.Credential) gateway.AuthAPI { return client.WithCredential(cred) },
		Hub:            hub,
		AllowedOrigins: cfg.Console.AllowedOrigins,
		Logger:         logger,
	})

	go func() {
		logger.Info("Консоль запущена", zap.String("port", *port), zap.String("crm", *crmURL))
		if err := e.Start(":" + *port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Ошибка остановки сервера", zap.Error(err))
	}
	logger.Info("Консоль остановлена")
}
