package config

import (
	"errors"
	"fmt"
	"time"

	"goaccounts/internal/accounts/adapters"
	"goaccounts/pkg/db/mongo"
	"goaccounts/pkg/db/postgres"
	"goaccounts/pkg/db/redis"
)

// Ошибки конфигурации.
var (
	ErrUnknownDriver  = errors.New("unknown storage driver")
	ErrEmptyJWTSecret = errors.New("jwt secret key is empty")
)

// StorageConfig выбирает хранилище учетных записей.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"ACCOUNTS_STORAGE_DRIVER" env-default:"postgres"`
}

// GetDriver возвращает драйвер хранилища.
func (s *StorageConfig) GetDriver() adapters.Driver {
	return adapters.Driver(s.Driver)
}

// Validate проверяет имя драйвера.
func (s *StorageConfig) Validate() error {
	switch s.GetDriver() {
	case adapters.DriverPostgres, adapters.DriverMongo, adapters.DriverMemory:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, s.Driver)
	}
}

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host            string `yaml:"host" env:"ACCOUNTS_POSTGRES_HOST" env-default:"localhost"`
	Port            int    `yaml:"port" env:"ACCOUNTS_POSTGRES_PORT" env-default:"5432"`
	User            string `yaml:"user" env:"ACCOUNTS_POSTGRES_USER" env-default:"postgres"`
	Password        string `yaml:"password" env:"ACCOUNTS_POSTGRES_PASSWORD" env-default:"postgres"`
	Database        string `yaml:"database" env:"ACCOUNTS_POSTGRES_DB" env-default:"accounts"`
	MinConn         int    `yaml:"min_conn" env:"ACCOUNTS_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn         int    `yaml:"max_conn" env:"ACCOUNTS_POSTGRES_MAX_CONN" env-default:"10"`
	ConnectAttempts uint64 `yaml:"connect_attempts" env:"ACCOUNTS_POSTGRES_CONNECT_ATTEMPTS" env-default:"5"`
	MigrationsPath  string `yaml:"migrations_path" env:"ACCOUNTS_POSTGRES_MIGRATIONS_PATH" env-default:"migrations/accounts"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

// GetOptions возвращает параметры пула.
func (p *PostgresConfig) GetOptions() postgres.Options {
	return postgres.Options{
		MinConn:         p.MinConn,
		MaxConn:         p.MaxConn,
		ConnectAttempts: p.ConnectAttempts,
	}
}

// MongoConfig содержит настройки подключения к MongoDB.
type MongoConfig struct {
	URI        string        `yaml:"uri" env:"ACCOUNTS_MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database   string        `yaml:"database" env:"ACCOUNTS_MONGO_DB" env-default:"accounts"`
	Collection string        `yaml:"collection" env:"ACCOUNTS_MONGO_COLLECTION" env-default:"accounts"`
	Timeout    time.Duration `yaml:"timeout" env:"ACCOUNTS_MONGO_TIMEOUT" env-default:"5s"`
}

// GetClientConfig возвращает параметры клиента MongoDB.
func (m *MongoConfig) GetClientConfig() mongo.Config {
	return mongo.Config{
		URI:        m.URI,
		Database:   m.Database,
		Collection: m.Collection,
		Timeout:    m.Timeout,
	}
}

// RedisConfig содержит настройки кэша профилей.
type RedisConfig struct {
	Enabled  bool          `yaml:"enabled" env:"ACCOUNTS_REDIS_ENABLED" env-default:"false"`
	Host     string        `yaml:"host" env:"ACCOUNTS_REDIS_HOST" env-default:"localhost"`
	Port     int           `yaml:"port" env:"ACCOUNTS_REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"ACCOUNTS_REDIS_PASSWORD" env-default:""`
	DB       int           `yaml:"db" env:"ACCOUNTS_REDIS_DB" env-default:"0"`
	PoolSize int           `yaml:"pool_size" env:"ACCOUNTS_REDIS_POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `yaml:"timeout" env:"ACCOUNTS_REDIS_TIMEOUT" env-default:"3s"`
	TTL      time.Duration `yaml:"ttl" env:"ACCOUNTS_REDIS_PROFILE_TTL" env-default:"10m"`
}

// GetAddressString возвращает адрес Redis.
func (r *RedisConfig) GetAddressString() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// GetClientConfig возвращает параметры клиента Redis.
func (r *RedisConfig) GetClientConfig() *redis.Config {
	return &redis.Config{
		Addr:     r.GetAddressString(),
		Password: r.Password,
		DB:       r.DB,
		PoolSize: r.PoolSize,
		Timeout:  r.Timeout,
	}
}
