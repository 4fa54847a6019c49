package services

import (
	"context"

	"goaccounts/internal/accounts/domain/services"
)

// TokenService выпускает и разбирает подписанные токены сессии.
type TokenService interface {
	GenerateToken(ctx context.Context, claims services.Claims) (string, error)
	ParseToken(ctx context.Context, token string) (*services.Claims, error)
}
