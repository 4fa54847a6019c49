// Package app содержит сценарии регистрации, входа и получения учетной записи.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"goaccounts/internal/accounts/domain/avatar"
	"goaccounts/internal/accounts/domain/entities"
	"goaccounts/internal/accounts/domain/services"
	"goaccounts/internal/accounts/ports/api"
	"goaccounts/internal/accounts/ports/repositories"
	svc "goaccounts/internal/accounts/ports/services"
	"goaccounts/pkg/logger"
)

// SourceRegistration - тег сценария регистрации в отказах.
const SourceRegistration = "create-account-usecase"

const (
	methodRegister = "Register"

	msgStartRegistration  = "starting account registration"
	msgValidationFailed   = "registration input rejected"
	msgEmailExists        = "account with this email already exists"
	msgEmailTakenOnInsert = "email taken between check and insert"
	msgNothingCreated     = "repository returned no account"
	msgAccountRegistered  = "account registered successfully"

	msgErrCheckExisting = "failed to check existing account"
	msgErrCreate        = "failed to create account"
	msgErrToken         = "failed to issue token for new account"

	errCtxValidating     = "validating registration"
	errCtxCheckingEmail  = "checking existing account"
	errCtxEmailTaken     = "email already registered"
	errCtxCreating       = "creating account"
	errCtxNothingCreated = "storing account"
	errCtxIssuingToken   = "issuing token"
)

// RegistrationUseCaseImpl реализует api.RegistrationUseCase.
type RegistrationUseCaseImpl struct {
	accountRepo   repositories.AccountRepository
	tokenSvc      svc.TokenService
	avatarBaseURL string
}

// NewRegistrationUseCase создает сценарий регистрации. Пустой avatarBaseURL заменяется адресом по умолчанию.
func NewRegistrationUseCase(
	accountRepo repositories.AccountRepository,
	tokenSvc svc.TokenService,
	avatarBaseURL string,
) api.RegistrationUseCase {
	if avatarBaseURL == "" {
		avatarBaseURL = avatar.DefaultBaseURL
	}
	return &RegistrationUseCaseImpl{
		accountRepo:   accountRepo,
		tokenSvc:      tokenSvc,
		avatarBaseURL: avatarBaseURL,
	}
}

// Register создает учетную запись с аватаром и выдает токен.
func (r *RegistrationUseCaseImpl) Register(
	ctx context.Context,
	name, email, password string,
	descriptor entities.Avatar,
) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", email))
	log.Debug(ctx, msgStartRegistration)

	if violations := ValidateRegistration(name, email, password); len(violations) > 0 {
		log.Debug(ctx, msgValidationFailed, zap.Strings("violations", violations))
		return nil, fmt.Errorf("%s: %w", errCtxValidating,
			services.NewFailure(services.KindValidationFailed, joinViolations(violations), SourceRegistration))
	}

	existing, err := r.accountRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrAccountNotFound) {
		log.Error(ctx, msgErrCheckExisting, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingEmail, err)
	}
	if existing != nil {
		log.Debug(ctx, msgEmailExists)
		return nil, fmt.Errorf("%s: %w", errCtxEmailTaken, alreadyExists())
	}

	created, err := r.accountRepo.Create(ctx, &entities.NewAccount{
		Name:     name,
		Email:    email,
		Password: password,
		Avatar:   avatar.Build(r.avatarBaseURL, descriptor),
	})
	if err != nil {
		if errors.Is(err, entities.ErrEmailTaken) {
			log.Debug(ctx, msgEmailTakenOnInsert)
			return nil, fmt.Errorf("%s: %w", errCtxEmailTaken, alreadyExists())
		}
		log.Error(ctx, msgErrCreate, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreating, err)
	}
	if created == nil {
		log.Error(ctx, msgNothingCreated)
		return nil, fmt.Errorf("%s: %w", errCtxNothingCreated,
			services.NewFailure(services.KindRegistrationFailed, services.MsgRegistrationFailed, SourceRegistration))
	}

	log = log.With(zap.String("accountID", created.ID))

	token, err := r.tokenSvc.GenerateToken(ctx, services.ClaimsFor(created))
	if err != nil {
		log.Error(ctx, msgErrToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxIssuingToken, err)
	}

	log.Info(ctx, msgAccountRegistered)
	return services.NewSession(created, token), nil
}

func alreadyExists() *services.Failure {
	return services.NewFailure(services.KindAccountAlreadyExists, services.MsgAccountAlreadyExists, SourceRegistration)
}
