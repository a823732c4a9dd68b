// Package migrations хранит схему справочного CRM API и применяет её через goose.
package migrations

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed *.sql
var FS embed.FS

// Up накатывает все непримененные миграции.
func Up(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, FS)
	if err != nil {
		return fmt.Errorf("не удалось создать провайдер миграций: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("ошибка применения миграций: %w", err)
	}
	for _, r := range results {
		logger.Info("Миграция применена",
			zap.String("source", r.Source.Path),
			zap.Duration("duration", r.Duration),
		)
	}
	return nil
}
