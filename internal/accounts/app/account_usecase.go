package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"goaccounts/internal/accounts/domain/entities"
	"goaccounts/internal/accounts/domain/services"
	"goaccounts/internal/accounts/ports/api"
	"goaccounts/internal/accounts/ports/cache"
	"goaccounts/internal/accounts/ports/repositories"
	"goaccounts/pkg/logger"
)

// SourceGetAccount - тег сценария получения учетной записи в отказах.
const SourceGetAccount = "get-account-usecase"

const (
	methodGetAccount = "GetAccount"

	msgRequestingAccount = "requesting account profile"
	msgProfileFromCache  = "account profile served from cache"
	msgAccountMissing    = "account not found"
	msgProfileRetrieved  = "account profile retrieved"
	msgCacheReadFailed   = "profile cache read failed"
	msgCacheWriteFailed  = "profile cache write failed"

	msgErrFindingByID = "failed to find account by ID"

	errCtxFetchingAccount = "fetching account"
)

// AccountUseCaseImpl реализует api.AccountUseCase.
type AccountUseCaseImpl struct {
	accountRepo repositories.AccountRepository
	profiles    cache.ProfileCache
}

// NewAccountUseCase создает сценарий получения профиля. profiles может быть nil.
func NewAccountUseCase(accountRepo repositories.AccountRepository, profiles cache.ProfileCache) api.AccountUseCase {
	return &AccountUseCaseImpl{
		accountRepo: accountRepo,
		profiles:    profiles,
	}
}

// GetAccount возвращает публичный профиль по идентификатору.
func (u *AccountUseCaseImpl) GetAccount(ctx context.Context, id string) (*entities.Profile, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetAccount), zap.String("accountID", id))
	log.Debug(ctx, msgRequestingAccount)

	if u.profiles != nil {
		cached, err := u.profiles.Get(ctx, id)
		switch {
		case err != nil:
			log.Warn(ctx, msgCacheReadFailed, zap.Error(err))
		case cached != nil:
			log.Debug(ctx, msgProfileFromCache)
			return cached, nil
		}
	}

	account, err := u.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrAccountNotFound) {
			log.Debug(ctx, msgAccountMissing)
			return nil, fmt.Errorf("%s: %w", errCtxFetchingAccount,
				services.NewFailure(services.KindAccountNotFound, services.MsgAccountNotFound, SourceGetAccount))
		}
		log.Error(ctx, msgErrFindingByID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingAccount, err)
	}

	profile := account.Profile()

	if u.profiles != nil {
		if err := u.profiles.Set(ctx, profile); err != nil {
			log.Warn(ctx, msgCacheWriteFailed, zap.Error(err))
		}
	}

	log.Info(ctx, msgProfileRetrieved)
	return profile, nil
}
