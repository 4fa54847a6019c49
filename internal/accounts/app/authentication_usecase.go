package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"goaccounts/internal/accounts/domain/entities"
	"goaccounts/internal/accounts/domain/services"
	"goaccounts/internal/accounts/ports/api"
	"goaccounts/internal/accounts/ports/repositories"
	svc "goaccounts/internal/accounts/ports/services"
	"goaccounts/pkg/logger"
)

// SourceLogin - тег сценария входа в отказах.
const SourceLogin = "login-account-usecase"

const (
	methodLogin = "Login"

	msgLoginAttempt       = "login attempt"
	msgLoginInputRejected = "login input rejected"
	msgLoginNonExistent   = "login attempt with non-existent email"
	msgWrongPassword      = "invalid password provided"
	msgLoggedIn           = "account logged in successfully"

	msgErrFindingAccount  = "error finding account by email"
	msgErrVerifying       = "error verifying password"
	msgErrIssuingLoginTok = "failed to issue token on login"

	errCtxValidatingLogin    = "validating login"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingAccount     = "finding account"
	errCtxVerifyingPassword  = "verifying password"
)

// AuthenticationUseCaseImpl реализует api.AuthenticationUseCase.
type AuthenticationUseCaseImpl struct {
	accountRepo repositories.AccountRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewAuthenticationUseCase создает сценарий входа.
func NewAuthenticationUseCase(
	accountRepo repositories.AccountRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthenticationUseCase {
	return &AuthenticationUseCaseImpl{
		accountRepo: accountRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Login проверяет учетные данные и выдает токен. Неизвестный email и неверный пароль
// дают один и тот же отказ InvalidCredentials.
func (a *AuthenticationUseCaseImpl) Login(ctx context.Context, email, password string) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	if violations := ValidateLogin(email, password); len(violations) > 0 {
		log.Debug(ctx, msgLoginInputRejected, zap.Strings("violations", violations))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingLogin,
			services.NewFailure(services.KindValidationFailed, joinViolations(violations), SourceLogin))
	}

	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrAccountNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, invalidCredentials())
		}
		log.Error(ctx, msgErrFindingAccount, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingAccount, err)
	}

	log = log.With(zap.String("accountID", account.ID))

	valid, err := a.passwordSvc.Verify(ctx, password, account.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifying, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgWrongPassword)
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, invalidCredentials())
	}

	token, err := a.tokenSvc.GenerateToken(ctx, services.ClaimsFor(account))
	if err != nil {
		log.Error(ctx, msgErrIssuingLoginTok, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxIssuingToken, err)
	}

	log.Info(ctx, msgLoggedIn)
	return services.NewSession(account, token), nil
}

func invalidCredentials() *services.Failure {
	return services.NewFailure(services.KindInvalidCredentials, services.MsgInvalidCredentials, SourceLogin)
}
