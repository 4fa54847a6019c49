package config

// JWTConfig содержит настройки подписи токенов и хэширования паролей.
type JWTConfig struct {
	SecretKey  string `yaml:"secret_key" env:"ACCOUNTS_JWT_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	BCryptCost int    `yaml:"bcrypt_cost" env:"ACCOUNTS_JWT_BCRYPT_COST" env-default:"10"`
}

// AvatarConfig содержит адрес сервиса аватаров.
type AvatarConfig struct {
	BaseURL string `yaml:"base_url" env:"ACCOUNTS_AVATAR_BASE_URL" env-default:"https://api.dicebear.com/6.x/adventurer"`
}
