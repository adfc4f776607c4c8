package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ecommerce/internal/storage/memory"
	"github.com/vladislavdragonenkov/ecommerce/internal/storage/postgres"
)

// Режимы хранилища.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// initStorage собирает репозитории согласно конфигурации.
// Для postgres применяются миграции перед стартом.
func initStorage(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	switch cfg.Storage {
	case StoragePostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres storage requires a DSN")
		}

		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("postgres storage initialized, migrations applied")

		return &Dependencies{
			Customers: postgres.NewCustomerRepository(store),
			Accounts:  postgres.NewAccountRepository(store),
			Products:  postgres.NewProductRepository(store),
			Orders:    postgres.NewOrderRepository(store),
			Store:     store,
			Logger:    logger,
		}, nil

	case StorageMemory, "":
		logger.Info("in-memory storage initialized")
		return &Dependencies{
			Customers: memory.NewCustomerRepository(),
			Accounts:  memory.NewAccountRepository(),
			Products:  memory.NewProductRepository(),
			Orders:    memory.NewOrderRepository(),
			Logger:    logger,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage mode: %q", cfg.Storage)
	}
}
