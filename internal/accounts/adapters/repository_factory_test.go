package adapters_test

import (
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"goaccounts/internal/accounts/adapters"
	"goaccounts/internal/accounts/adapters/memory"
	"goaccounts/internal/accounts/adapters/postgres"
	"goaccounts/internal/accounts/adapters/services"
)

func TestNewRepositoryFactory(t *testing.T) {
	passwords := services.NewBcrypt(bcrypt.MinCost)

	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer pool.Close()

	tests := []struct {
		name        string
		driver      adapters.Driver
		backends    adapters.Backends
		expected    any
		expectedErr error
	}{
		{
			name:     "memory",
			driver:   adapters.DriverMemory,
			expected: &memory.AccountRepository{},
		},
		{
			name:     "postgres",
			driver:   adapters.DriverPostgres,
			backends: adapters.Backends{Postgres: pool},
			expected: &postgres.AccountRepository{},
		},
		{
			name:        "postgres without pool",
			driver:      adapters.DriverPostgres,
			expectedErr: adapters.ErrMissingBackend,
		},
		{
			name:        "mongo without collection",
			driver:      adapters.DriverMongo,
			expectedErr: adapters.ErrMissingBackend,
		},
		{
			name:        "unknown driver",
			driver:      "sqlite",
			expectedErr: adapters.ErrUnknownDriver,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory, err := adapters.NewRepositoryFactory(tt.driver, tt.backends, passwords)

			if tt.expectedErr != nil {
				assert.Nil(t, factory)
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.IsType(t, tt.expected, factory.AccountRepository())
		})
	}
}
