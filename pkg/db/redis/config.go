package redis

import "time"

// Значения по умолчанию, совпадают с env-default в конфигурации сервиса.
const (
	DefaultAddr     = "localhost:6379"
	DefaultPoolSize = 10
	DefaultTimeout  = 3 * time.Second
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
	Timeout  time.Duration
}

// DefaultConfig возвращает конфигурацию по умолчанию.
func DefaultConfig() *Config {
	return &Config{
		Addr:     DefaultAddr,
		PoolSize: DefaultPoolSize,
		Timeout:  DefaultTimeout,
	}
}
