package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"goaccounts/internal/accounts/adapters"
	"goaccounts/internal/accounts/adapters/mongodb"
	"goaccounts/internal/accounts/config"
	"goaccounts/internal/accounts/db"
	"goaccounts/internal/accounts/ports/repositories"
	"goaccounts/internal/accounts/ports/services"
	"goaccounts/pkg/db/mongo"
	"goaccounts/pkg/logger"
)

const (
	LogClosingDB    = "closing database connections"
	LogClosingMongo = "closing MongoDB connection"
	LogMemoryStore  = "in-memory storage selected, accounts are lost on restart"
)

// storage - выбранное хранилище учетных записей и его жизненный цикл.
type storage struct {
	accounts repositories.AccountRepository
	ping     func(ctx context.Context) error
	close    func(ctx context.Context) error
}

func openStorage(ctx context.Context, cfg *config.Config, passwords services.PasswordService) (*storage, error) {
	var (
		backends adapters.Backends
		result   = &storage{
			ping:  func(context.Context) error { return nil },
			close: func(context.Context) error { return nil },
		}
	)

	switch cfg.Storage.GetDriver() {
	case adapters.DriverPostgres:
		database, err := db.New(ctx, &cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("opening postgres: %w", err)
		}
		backends.Postgres = database.Pool()
		result.ping = database.Ping
		result.close = func(ctx context.Context) error {
			logger.Log(ctx).Info(ctx, LogClosingDB)
			database.Close(ctx)
			return nil
		}
	case adapters.DriverMongo:
		client, err := mongo.NewClient(ctx, cfg.Mongo.GetClientConfig())
		if err != nil {
			return nil, fmt.Errorf("opening mongodb: %w", err)
		}
		collection := client.Collection()
		if err := mongodb.EnsureIndexes(ctx, collection); err != nil {
			_ = client.Close(ctx)
			return nil, fmt.Errorf("preparing mongodb: %w", err)
		}
		backends.Mongo = collection
		result.ping = func(ctx context.Context) error {
			return collection.Database().Client().Ping(ctx, nil)
		}
		result.close = func(ctx context.Context) error {
			logger.Log(ctx).Info(ctx, LogClosingMongo)
			return client.Close(ctx)
		}
	case adapters.DriverMemory:
		logger.Log(ctx).Warn(ctx, LogMemoryStore, zap.String("driver", cfg.Storage.Driver))
	}

	factory, err := adapters.NewRepositoryFactory(cfg.Storage.GetDriver(), backends, passwords)
	if err != nil {
		_ = result.close(ctx)
		return nil, fmt.Errorf("selecting repository: %w", err)
	}
	result.accounts = factory.AccountRepository()

	return result, nil
}
