// Package cache определяет порт кэша публичных профилей.
package cache

import (
	"context"

	"goaccounts/internal/accounts/domain/entities"
)

// ProfileCache хранит публичные проекции учетных записей. Get возвращает nil, nil при промахе.
type ProfileCache interface {
	Get(ctx context.Context, id string) (*entities.Profile, error)
	Set(ctx context.Context, profile *entities.Profile) error
}
