package api

import (
	"context"

	"goaccounts/internal/accounts/domain/entities"
	"goaccounts/internal/accounts/domain/services"
)

// RegistrationUseCase определяет порт регистрации учетной записи.
type RegistrationUseCase interface {
	Register(ctx context.Context, name, email, password string, avatar entities.Avatar) (*services.Session, error)
}

// AuthenticationUseCase определяет порт входа по email и паролю.
type AuthenticationUseCase interface {
	Login(ctx context.Context, email, password string) (*services.Session, error)
}

// AccountUseCase определяет порт получения публичного профиля.
type AccountUseCase interface {
	GetAccount(ctx context.Context, id string) (*entities.Profile, error)
}
