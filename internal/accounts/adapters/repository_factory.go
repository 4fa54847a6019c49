// Package adapters выбирает реализацию хранилища учетных записей по конфигурации.
package adapters

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"goaccounts/internal/accounts/adapters/memory"
	"goaccounts/internal/accounts/adapters/mongodb"
	"goaccounts/internal/accounts/adapters/postgres"
	"goaccounts/internal/accounts/ports/repositories"
	"goaccounts/internal/accounts/ports/services"
)

// Driver - имя хранилища учетных записей.
type Driver string

// Поддерживаемые хранилища.
const (
	DriverPostgres Driver = "postgres"
	DriverMongo    Driver = "mongo"
	DriverMemory   Driver = "memory"
)

// Ошибки выбора хранилища.
var (
	ErrUnknownDriver  = errors.New("unknown storage driver")
	ErrMissingBackend = errors.New("storage backend is not configured")
)

// Backends - подключения, из которых строится репозиторий.
type Backends struct {
	Postgres postgres.PgxPoolInterface
	Mongo    *mongo.Collection
}

// RepositoryFactory создает репозиторий учетных записей для выбранного хранилища.
type RepositoryFactory struct {
	accountRepo repositories.AccountRepository
}

// NewRepositoryFactory создает фабрику для драйвера driver.
func NewRepositoryFactory(driver Driver, backends Backends, passwords services.PasswordService) (*RepositoryFactory, error) {
	var repo repositories.AccountRepository

	switch driver {
	case DriverPostgres:
		if backends.Postgres == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingBackend, driver)
		}
		repo = postgres.NewAccountRepository(backends.Postgres, passwords)
	case DriverMongo:
		if backends.Mongo == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingBackend, driver)
		}
		repo = mongodb.NewAccountRepository(backends.Mongo, passwords)
	case DriverMemory:
		repo = memory.NewAccountRepository(passwords)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	return &RepositoryFactory{accountRepo: repo}, nil
}

// AccountRepository возвращает репозиторий учетных записей.
func (f *RepositoryFactory) AccountRepository() repositories.AccountRepository {
	return f.accountRepo
}
