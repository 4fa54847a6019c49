// Package memory реализует хранилище учетных записей в памяти процесса.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goaccounts/internal/accounts/domain/entities"
	"goaccounts/internal/accounts/ports/repositories"
	"goaccounts/internal/accounts/ports/services"
	"goaccounts/pkg/logger"
)

// AccountRepository хранит учетные записи в map с индексом по email.
type AccountRepository struct {
	passwords services.PasswordService

	mu      sync.RWMutex
	byID    map[string]*entities.Account
	byEmail map[string]string
}

// NewAccountRepository создает пустой репозиторий.
func NewAccountRepository(passwords services.PasswordService) repositories.AccountRepository {
	return &AccountRepository{
		passwords: passwords,
		byID:      make(map[string]*entities.Account),
		byEmail:   make(map[string]string),
	}
}

// FindByID находит учетную запись по ID.
func (r *AccountRepository) FindByID(_ context.Context, id string) (*entities.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byID[id]
	if !ok {
		return nil, entities.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

// FindByEmail находит учетную запись по email.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entities.Account, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, entities.ErrAccountNotFound
	}
	return r.FindByID(ctx, id)
}

// Create хэширует пароль вне блокировки, затем вставляет запись, если email свободен.
func (r *AccountRepository) Create(ctx context.Context, candidate *entities.NewAccount) (*entities.Account, error) {
	log := logger.Log(ctx).With(zap.String("repository", "account"), zap.String("method", "Create"))

	hash, err := r.passwords.Hash(ctx, candidate.Password)
	if err != nil {
		log.Error(ctx, "error hashing password", zap.Error(err))
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := &entities.Account{
		ID:           uuid.NewString(),
		Name:         candidate.Name,
		Email:        candidate.Email,
		PasswordHash: hash,
		Avatar:       candidate.Avatar,
		CreatedAt:    time.Now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[account.Email]; taken {
		log.Debug(ctx, "email already registered", zap.String("email", account.Email))
		return nil, entities.ErrEmailTaken
	}
	r.byID[account.ID] = account
	r.byEmail[account.Email] = account.ID

	copied := *account
	return &copied, nil
}
