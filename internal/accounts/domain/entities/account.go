package entities

import (
	"errors"
	"time"
)

// Ошибки хранилища учетных записей.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// Account - сохраненная учетная запись пользователя.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Avatar       Avatar
	CreatedAt    time.Time
}

// NewAccount - кандидат на создание. Password передается в открытом виде,
// хэширование выполняет репозиторий до записи в хранилище.
type NewAccount struct {
	Name     string
	Email    string
	Password string
	Avatar   Avatar
}

// Profile - публичная проекция учетной записи без учетных данных.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    Avatar    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile возвращает публичную проекцию.
func (a *Account) Profile() *Profile {
	return &Profile{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Avatar:    a.Avatar,
		CreatedAt: a.CreatedAt,
	}
}
