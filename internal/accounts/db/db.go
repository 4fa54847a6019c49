// Package db инициализирует базу данных сервиса учетных записей.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"goaccounts/internal/accounts/config"
	"goaccounts/pkg/db/postgres"
	"goaccounts/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing accounts database"
	LogDBInitialized     = "accounts database initialized successfully"
	LogMigrationStarting = "starting database migrations for accounts service"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply accounts database migrations"
	ErrDBConnection = "failed to connect to accounts database"
	ErrGetPath      = "failed to get path"
)

// DB представляет соединение с базой данных сервиса учетных записей.
type DB struct {
	database *postgres.Database
}

// New подключается к базе, дожидаясь ее доступности, и применяет миграции.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	migrationsURL, err := SourceURL(cfg.MigrationsPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", ErrDBMigrations, ErrGetPath, err)
	}

	database, err := postgres.New(ctx, cfg.GetDSN(), cfg.GetOptions())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsURL))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsURL); err != nil {
		database.Close(ctx)
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// SourceURL превращает каталог миграций в URL источника golang-migrate.
func SourceURL(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return "file://" + dir, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", dir, err)
	}
	return "file://" + abs, nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
