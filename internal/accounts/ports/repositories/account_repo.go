package repositories

import (
	"context"

	"goaccounts/internal/accounts/domain/entities"
)

// AccountRepository определяет границу хранилища учетных записей.
// Поиск возвращает entities.ErrAccountNotFound, если запись отсутствует.
// Create хэширует пароль до записи и возвращает entities.ErrEmailTaken,
// если хранилище отклонило вставку из-за занятого email.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*entities.Account, error)
	FindByID(ctx context.Context, id string) (*entities.Account, error)
	Create(ctx context.Context, candidate *entities.NewAccount) (*entities.Account, error)
}
