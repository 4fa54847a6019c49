package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"goaccounts/internal/accounts/adapters/memory"
	adapters "goaccounts/internal/accounts/adapters/services"
	"goaccounts/internal/accounts/app"
	"goaccounts/internal/accounts/domain/entities"
	"goaccounts/internal/accounts/domain/services"
)

var (
	ErrDatabaseDown = errors.New("database is down")
	ErrSigning      = errors.New("signing failed")
)

const (
	adaName     = "Ada"
	adaEmail    = "ada@example.com"
	adaPassword = "secret1"
	adaID       = "0b7e1c3a-6f0e-4c59-9a1d-3f6f4b2c8e11"
	adaToken    = "signed-token"
	adaAvatar   = "https://api.dicebear.com/6.x/adventurer/svg?seed=ada"
)

func adaAccount() *entities.Account {
	return &entities.Account{
		ID:           adaID,
		Name:         adaName,
		Email:        adaEmail,
		PasswordHash: "$2a$10$hash",
		Avatar:       entities.Avatar{Seed: "ada", URL: adaAvatar},
		CreatedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestRegister(t *testing.T) {
	adaClaims := services.Claims{ID: adaID, Name: adaName, Email: adaEmail}

	tests := []struct {
		name        string
		userName    string
		email       string
		password    string
		setupMocks  func(repo *mockAccountRepository, tokens *mockTokenService)
		expected    *services.Session
		expectedErr error
		message     string
	}{
		{
			name:     "success - account registered",
			userName: adaName,
			email:    adaEmail,
			password: adaPassword,
			setupMocks: func(repo *mockAccountRepository, tokens *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, adaEmail).Return(nil, entities.ErrAccountNotFound).Once()
				repo.On("Create", mock.Anything, mock.MatchedBy(func(c *entities.NewAccount) bool {
					return c.Name == adaName && c.Email == adaEmail && c.Password == adaPassword &&
						c.Avatar.URL == adaAvatar
				})).Return(adaAccount(), nil).Once()
				tokens.On("GenerateToken", mock.Anything, adaClaims).Return(adaToken, nil).Once()
			},
			expected: &services.Session{
				ID:     adaID,
				Token:  adaToken,
				Name:   adaName,
				Email:  adaEmail,
				Avatar: entities.Avatar{Seed: "ada", URL: adaAvatar},
				Status: services.StatusSuccess,
			},
		},
		{
			name:        "error - validation collects every violation",
			userName:    "",
			email:       "bad",
			password:    "123",
			setupMocks:  func(_ *mockAccountRepository, _ *mockTokenService) {},
			expectedErr: services.ErrValidationFailed,
			message:     "Name is required, Email format is invalid, Password required min 6 characters",
		},
		{
			name:     "error - email already registered",
			userName: adaName,
			email:    adaEmail,
			password: adaPassword,
			setupMocks: func(repo *mockAccountRepository, _ *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, adaEmail).Return(adaAccount(), nil).Once()
			},
			expectedErr: services.ErrAccountAlreadyExists,
			message:     services.MsgAccountAlreadyExists,
		},
		{
			name:     "error - email taken between check and insert",
			userName: adaName,
			email:    adaEmail,
			password: adaPassword,
			setupMocks: func(repo *mockAccountRepository, _ *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, adaEmail).Return(nil, entities.ErrAccountNotFound).Once()
				repo.On("Create", mock.Anything, mock.Anything).Return(nil, entities.ErrEmailTaken).Once()
			},
			expectedErr: services.ErrAccountAlreadyExists,
			message:     services.MsgAccountAlreadyExists,
		},
		{
			name:     "error - repository created nothing",
			userName: adaName,
			email:    adaEmail,
			password: adaPassword,
			setupMocks: func(repo *mockAccountRepository, _ *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, adaEmail).Return(nil, entities.ErrAccountNotFound).Once()
				repo.On("Create", mock.Anything, mock.Anything).Return(nil, nil).Once()
			},
			expectedErr: services.ErrRegistrationFailed,
			message:     services.MsgRegistrationFailed,
		},
		{
			name:     "error - lookup fails",
			userName: adaName,
			email:    adaEmail,
			password: adaPassword,
			setupMocks: func(repo *mockAccountRepository, _ *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, adaEmail).Return(nil, ErrDatabaseDown).Once()
			},
			expectedErr: ErrDatabaseDown,
		},
		{
			name:     "error - token signing fails",
			userName: adaName,
			email:    adaEmail,
			password: adaPassword,
			setupMocks: func(repo *mockAccountRepository, tokens *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, adaEmail).Return(nil, entities.ErrAccountNotFound).Once()
				repo.On("Create", mock.Anything, mock.Anything).Return(adaAccount(), nil).Once()
				tokens.On("GenerateToken", mock.Anything, adaClaims).Return("", ErrSigning).Once()
			},
			expectedErr: ErrSigning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockAccountRepository)
			tokens := new(mockTokenService)
			tt.setupMocks(repo, tokens)

			useCase := app.NewRegistrationUseCase(repo, tokens, "")
			session, err := useCase.Register(context.Background(), tt.userName, tt.email, tt.password,
				entities.Avatar{Seed: "ada"})

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.Nil(t, session)
				assert.ErrorIs(t, err, tt.expectedErr)
				if tt.message != "" {
					failure, ok := services.AsFailure(err)
					require.True(t, ok)
					assert.Equal(t, tt.message, failure.Message)
					assert.Equal(t, app.SourceRegistration, failure.Source)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, session)
			}

			repo.AssertExpectations(t)
			tokens.AssertExpectations(t)
		})
	}
}

func TestRegisterBuildsAvatarFromOptions(t *testing.T) {
	repo := new(mockAccountRepository)
	tokens := new(mockTokenService)

	const want = "https://avatars.test/style/svg?seed=Ada%20L&accessories[]=glasses&accessories[]=hat&backgroundColor=b6e3f4"

	repo.On("FindByEmail", mock.Anything, adaEmail).Return(nil, entities.ErrAccountNotFound).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *entities.NewAccount) bool {
		return c.Avatar.URL == want && c.Avatar.Seed == "Ada L"
	})).Return(adaAccount(), nil).Once()
	tokens.On("GenerateToken", mock.Anything, mock.Anything).Return(adaToken, nil).Once()

	useCase := app.NewRegistrationUseCase(repo, tokens, "https://avatars.test/style/")
	_, err := useCase.Register(context.Background(), adaName, adaEmail, adaPassword, entities.Avatar{
		Seed: "Ada L",
		Options: map[string]entities.StyleValue{
			"backgroundColor": entities.String("b6e3f4"),
			"accessories":     entities.Strings("glasses", "hat"),
			"mouth":           entities.Strings(),
		},
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRegisterTokenCarriesAccountClaims(t *testing.T) {
	ctx := context.Background()
	tokens := adapters.NewJWT("test-secret")
	repo := memory.NewAccountRepository(adapters.NewBcrypt(4))

	session, err := app.NewRegistrationUseCase(repo, tokens, "").
		Register(ctx, adaName, adaEmail, adaPassword, entities.Avatar{Seed: "ada"})
	require.NoError(t, err)
	assert.Equal(t, adaAvatar, session.Avatar.URL)

	claims, err := tokens.ParseToken(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, services.Claims{ID: session.ID, Name: adaName, Email: adaEmail}, *claims)

	_, err = app.NewRegistrationUseCase(repo, tokens, "").
		Register(ctx, "Other", adaEmail, "another1", entities.Avatar{Seed: "x"})
	assert.ErrorIs(t, err, services.ErrAccountAlreadyExists)
}
