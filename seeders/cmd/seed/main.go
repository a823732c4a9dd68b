package main

import (
	"context"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"crm-console/migrations"
	"crm-console/pkg/config"
	"crm-console/pkg/database/postgresql"
	applogger "crm-console/pkg/logger"
	"crm-console/seeders"
)

func main() {
	cfg := config.New()

	runCore := flag.Bool("core", false, "статусы, роли, права и права роли Agent")
	runAdmin := flag.Bool("admin", false, "администратор из SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD")
	runDemo := flag.Bool("demo", false, "демо-агенты и лиды")
	runAll := flag.Bool("all", false, "core + admin")
	dsn := flag.String("database-url", cfg.Postgres.DSN, "строка подключения к PostgreSQL")
	adminEmail := flag.String("admin-email", cfg.Seed.AdminEmail, "email администратора")
	flag.Parse()

	logger := applogger.NewLogger(cfg.Console.LogFile).Named("seed")
	defer func() { _ = logger.Sync() }()

	if !*runCore && !*runAdmin && !*runDemo && !*runAll {
		logger.Warn("Не выбран ни один сидер")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ctx := context.Background()
	db, err := postgresql.ConnectDB(ctx, *dsn, logger)
	if err != nil {
		logger.Fatal("Не удалось подключиться к PostgreSQL", zap.Error(err))
	}
	defer db.Close()

	if err := migrations.Up(ctx, db, logger); err != nil {
		logger.Fatal("Ошибка применения миграций", zap.Error(err))
	}

	if *runAll || *runCore {
		if err := seeders.SeedCoreDictionaries(ctx, db, logger); err != nil {
			logger.Fatal("Ошибка наполнения справочников", zap.Error(err))
		}
	}
	if *runAll || *runAdmin {
		seedCfg := cfg.Seed
		seedCfg.AdminEmail = *adminEmail
		if err := seeders.SeedAdmin(ctx, db, seedCfg, logger); err != nil {
			logger.Fatal("Ошибка создания администратора", zap.Error(err))
		}
	}
	if *runDemo {
		if err := seeders.SeedDemo(ctx, db, logger); err != nil {
			logger.Fatal("Ошибка наполнения демо-данными", zap.Error(err))
		}
	}
	logger.Info("Сидеры выполнены")
}
